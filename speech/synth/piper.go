package synth

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// DefaultTimeout bounds a single piper run when the caller's context has no
// deadline of its own.
const DefaultTimeout = 30 * time.Second

// Piper renders text through the piper CLI. The binary is looked up in the
// runtime directory first, then in $PATH, and finally falls back to running
// `python -m piper` so source installs keep working without a bundled
// executable.
type Piper struct {
	runtimeDir string
	outDir     string
	timeout    time.Duration

	// piper keeps per-model state warm between runs; overlapping processes
	// trample each other's caches, so runs are serialized.
	mu sync.Mutex
}

// NewPiper creates a Piper engine writing artifacts into outDir.
func NewPiper(runtimeDir, outDir string, timeout time.Duration) *Piper {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Piper{runtimeDir: runtimeDir, outDir: outDir, timeout: timeout}
}

// Synthesize runs piper for req and returns the path of the rendered wav.
func (p *Piper) Synthesize(ctx context.Context, req Request) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, err := os.Stat(req.VoicePath); err != nil {
		return "", fmt.Errorf("%w: %s", ErrVoiceNotFound, req.VoicePath)
	}

	binary, baseArgs, err := p.resolveCommand()
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(p.outDir, 0o755); err != nil {
		return "", fmt.Errorf("%w: preparing output directory: %v", ErrSynthesisFailed, err)
	}
	outPath := filepath.Join(p.outDir, uuid.NewString()+".wav")

	if _, has := ctx.Deadline(); !has {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	args := append(baseArgs, buildArgs(req, outPath)...)
	cmd := exec.CommandContext(ctx, binary, args...)
	// Stdin is wired up before Start so piper never races a late writer.
	cmd.Stdin = strings.NewReader(strings.TrimSpace(req.Text))
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()

	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return "", fmt.Errorf("%w after %v", ErrTimeout, p.timeout)
		}
		return "", fmt.Errorf("%w: %v", ErrSynthesisFailed, ctxErr)
	}
	if runErr != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("%w: %v: %s", ErrSynthesisFailed, runErr, msg)
		}
		return "", fmt.Errorf("%w: %v", ErrSynthesisFailed, runErr)
	}

	log.Debug("synthesis complete",
		"voice", filepath.Base(req.VoicePath),
		"bytes", len(req.Text),
		"elapsed", time.Since(start),
		"artifact", outPath)
	return outPath, nil
}

// resolveCommand locates the piper executable. Resolution order: the
// runtime directory, $PATH, then `python -m piper`.
func (p *Piper) resolveCommand() (string, []string, error) {
	candidate := filepath.Join(p.runtimeDir, "piper", piperBinaryName())
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil, nil
	}

	if path, err := exec.LookPath("piper"); err == nil {
		return path, nil, nil
	}

	if python, err := exec.LookPath("python"); err == nil {
		return python, []string{"-m", "piper"}, nil
	}
	if python3, err := exec.LookPath("python3"); err == nil {
		return python3, []string{"-m", "piper"}, nil
	}

	return "", nil, fmt.Errorf("%w: no piper binary under %s, in PATH, or runnable via python -m piper",
		ErrEngineNotFound, p.runtimeDir)
}

// buildArgs maps a Request onto the piper CLI flags. Piper has no separate
// rate control, so the user rate is folded into the length scale: speaking
// twice as fast halves the phoneme length scale.
func buildArgs(req Request, outPath string) []string {
	lengthScale := req.LengthScale
	if req.Rate > 0 {
		lengthScale = lengthScale / req.Rate
	}
	if lengthScale < 0.1 {
		lengthScale = 0.1
	}
	if lengthScale > 3.0 {
		lengthScale = 3.0
	}

	return []string{
		"-m", req.VoicePath,
		"-f", outPath,
		"--sentence-break", strconv.FormatInt(req.SentenceBreak.Milliseconds(), 10),
		"--length-scale", formatScale(lengthScale),
		"--noise-scale", formatScale(req.NoiseScale),
		"--noise-w", formatScale(req.NoiseW),
	}
}

func formatScale(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func piperBinaryName() string {
	if runtime.GOOS == "windows" {
		return "piper.exe"
	}
	return "piper"
}
