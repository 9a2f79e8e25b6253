// Package export encodes rendered speech artifacts for use outside the
// application.
package export

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// ErrSourceMissing is returned when the wav to encode does not exist.
var ErrSourceMissing = errors.New("source artifact not found")

// ffmpegEnvVar overrides ffmpeg discovery, pointing at a specific binary.
const ffmpegEnvVar = "LECTOR_FFMPEG"

// Encoder converts wav artifacts to mp3 through ffmpeg. When no ffmpeg
// binary can be found the wav bytes are copied to the destination
// unchanged, so an export always produces a file.
type Encoder struct {
	// lookPath is swapped out in tests.
	lookPath func(string) (string, error)
}

// NewEncoder returns an Encoder using the system ffmpeg.
func NewEncoder() *Encoder {
	return &Encoder{lookPath: exec.LookPath}
}

// Encode writes an mp3 rendition of the wav at src to dst. It reports the
// path actually written: dst when ffmpeg ran, or a .wav sibling of dst
// when the encoder fell back to a plain copy.
func (e *Encoder) Encode(src, dst string) (string, error) {
	if _, err := os.Stat(src); err != nil {
		return "", fmt.Errorf("%w: %s", ErrSourceMissing, src)
	}
	if dir := filepath.Dir(dst); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating export directory: %w", err)
		}
	}

	ffmpeg, err := e.resolveFFmpeg()
	if err != nil {
		log.Warn("ffmpeg unavailable, exporting wav instead", "error", err)
		return e.copyWav(src, dst)
	}

	args := []string{"-y", "-i", src, "-vn", "-ar", "22050", "-ac", "1", dst}
	cmd := exec.Command(ffmpeg, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	log.Debug("encoding export", "ffmpeg", ffmpeg, "src", src, "dst", dst)
	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("ffmpeg failed: %w: %s", err, bytes.TrimSpace(stderr.Bytes()))
	}
	return dst, nil
}

// resolveFFmpeg finds the ffmpeg binary, preferring the env override.
func (e *Encoder) resolveFFmpeg() (string, error) {
	if override := os.Getenv(ffmpegEnvVar); override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("%s points at %s: %w", ffmpegEnvVar, override, err)
		}
		return override, nil
	}
	return e.lookPath("ffmpeg")
}

// copyWav duplicates the source wav next to the requested destination,
// swapping the extension so the file's name matches its contents.
func (e *Encoder) copyWav(src, dst string) (string, error) {
	out := dst[:len(dst)-len(filepath.Ext(dst))] + ".wav"

	in, err := os.Open(src)
	if err != nil {
		return "", fmt.Errorf("opening source artifact: %w", err)
	}
	defer in.Close()

	f, err := os.Create(out)
	if err != nil {
		return "", fmt.Errorf("creating export file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, in); err != nil {
		return "", fmt.Errorf("copying artifact: %w", err)
	}
	return out, nil
}
