// Package voices discovers installed piper voice models and resolves
// voice ids onto the model files the synthesis engine loads.
package voices

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
)

// ErrVoiceUnknown is returned when a voice id resolves to no installed model.
var ErrVoiceUnknown = errors.New("voice not installed")

// Voice describes one installed model. ID is the model file name without
// the .onnx extension and is what preferences store.
type Voice struct {
	ID        string
	Label     string
	Language  string
	Quality   string
	ModelPath string
}

// modelMetadata is the subset of the piper .onnx.json sidecar we read.
type modelMetadata struct {
	Dataset  string `json:"dataset"`
	Audio    struct {
		Quality string `json:"quality"`
	} `json:"audio"`
	Language struct {
		Code        string `json:"code"`
		NameEnglish string `json:"name_english"`
	} `json:"language"`
}

// Library indexes the voice models found under a directory tree. Safe for
// concurrent use; Rescan rebuilds the index in place.
type Library struct {
	mu     sync.RWMutex
	dir    string
	voices map[string]Voice
}

// NewLibrary scans dir for .onnx models. A missing directory yields an
// empty library rather than an error so a fresh install starts clean.
func NewLibrary(dir string) (*Library, error) {
	l := &Library{dir: dir, voices: make(map[string]Voice)}
	if err := l.Rescan(); err != nil {
		return nil, err
	}
	return l, nil
}

// Rescan walks the voice directory and rebuilds the index.
func (l *Library) Rescan() error {
	found := make(map[string]Voice)

	err := filepath.WalkDir(l.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".onnx") {
			return nil
		}
		voice := describeVoice(path)
		found[voice.ID] = voice
		return nil
	})
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			log.Debug("voice directory absent", "dir", l.dir)
			err = nil
		} else {
			return fmt.Errorf("scanning voices in %s: %w", l.dir, err)
		}
	}

	l.mu.Lock()
	l.voices = found
	l.mu.Unlock()
	log.Debug("voice scan complete", "dir", l.dir, "count", len(found))
	return nil
}

// describeVoice builds a Voice for the model at path, enriching the label
// from the .onnx.json sidecar when one is present.
func describeVoice(path string) Voice {
	id := strings.TrimSuffix(filepath.Base(path), ".onnx")
	voice := Voice{ID: id, Label: id, ModelPath: path}

	contents, err := os.ReadFile(path + ".json")
	if err != nil {
		return voice
	}
	var meta modelMetadata
	if err := json.Unmarshal(contents, &meta); err != nil {
		log.Debug("unreadable voice metadata", "path", path+".json", "error", err)
		return voice
	}

	voice.Language = meta.Language.Code
	voice.Quality = meta.Audio.Quality

	var parts []string
	if meta.Language.NameEnglish != "" {
		parts = append(parts, meta.Language.NameEnglish)
	}
	if meta.Dataset != "" {
		parts = append(parts, meta.Dataset)
	}
	if meta.Audio.Quality != "" {
		parts = append(parts, meta.Audio.Quality)
	}
	if len(parts) > 0 {
		voice.Label = strings.Join(parts, " / ")
	}
	return voice
}

// List returns the installed voices sorted by label, then id.
func (l *Library) List() []Voice {
	l.mu.RLock()
	defer l.mu.RUnlock()
	voices := make([]Voice, 0, len(l.voices))
	for _, v := range l.voices {
		voices = append(voices, v)
	}
	sort.Slice(voices, func(i, j int) bool {
		if voices[i].Label != voices[j].Label {
			return voices[i].Label < voices[j].Label
		}
		return voices[i].ID < voices[j].ID
	})
	return voices
}

// Get returns the voice for id, if installed.
func (l *Library) Get(id string) (Voice, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	v, ok := l.voices[id]
	return v, ok
}

// Len returns the number of installed voices.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.voices)
}

// Resolve maps a voice id onto its model path. An empty id resolves to
// the first voice in List order so a fresh profile can speak immediately.
func (l *Library) Resolve(voiceID string) (string, error) {
	if voiceID == "" {
		if voices := l.List(); len(voices) > 0 {
			return voices[0].ModelPath, nil
		}
		return "", fmt.Errorf("%w: no voices installed under %s", ErrVoiceUnknown, l.dir)
	}

	if v, ok := l.Get(voiceID); ok {
		return v.ModelPath, nil
	}
	return "", fmt.Errorf("%w: %s", ErrVoiceUnknown, voiceID)
}
