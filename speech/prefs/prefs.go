// Package prefs holds the voice and synthesis tuning preferences shared
// between the UI and the playback orchestrator.
package prefs

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

// Preferences carries the voice selection and the synthesis/audio tuning
// parameters. Numeric fields are clamped on write, never rejected.
type Preferences struct {
	VoiceID       string        `yaml:"voice" env:"LECTOR_VOICE"`
	Rate          float64       `yaml:"rate" env:"LECTOR_RATE" envDefault:"1.0"`
	Pitch         float64       `yaml:"pitch" env:"LECTOR_PITCH" envDefault:"1.0"`
	Volume        float64       `yaml:"volume" env:"LECTOR_VOLUME" envDefault:"1.0"`
	SentenceBreak time.Duration `yaml:"sentence_break" env:"LECTOR_SENTENCE_BREAK" envDefault:"550ms"`
	LengthScale   float64       `yaml:"length_scale" env:"LECTOR_LENGTH_SCALE" envDefault:"1.0"`
	NoiseScale    float64       `yaml:"noise_scale" env:"LECTOR_NOISE_SCALE" envDefault:"0.5"`
	NoiseW        float64       `yaml:"noise_w" env:"LECTOR_NOISE_W" envDefault:"0.9"`
	Theme         string        `yaml:"theme" env:"LECTOR_THEME" envDefault:"dark"`
}

// Update is a partial preference change. Nil fields keep their current
// value.
type Update struct {
	VoiceID       *string
	Rate          *float64
	Pitch         *float64
	Volume        *float64
	SentenceBreak *time.Duration
	LengthScale   *float64
	NoiseScale    *float64
	NoiseW        *float64
	Theme         *string
}

// Saver persists preferences as a side channel. Persistence is best-effort
// and never blocks or fails an in-memory update.
type Saver interface {
	Save(Preferences) error
}

// Default returns the preference values the synthesis engine ships with.
func Default() Preferences {
	return Preferences{
		Rate:          1.0,
		Pitch:         1.0,
		Volume:        1.0,
		SentenceBreak: 550 * time.Millisecond,
		LengthScale:   1.0,
		NoiseScale:    0.5,
		NoiseW:        0.9,
		Theme:         "dark",
	}
}

// Set owns the live preference values. Reads return snapshots; writes
// clamp each field into its valid range before storing.
type Set struct {
	mu    sync.RWMutex
	prefs Preferences
	saver Saver
}

// NewSet creates a Set seeded with initial (clamped) and an optional saver.
func NewSet(initial Preferences, saver Saver) *Set {
	return &Set{prefs: clampAll(initial), saver: saver}
}

// Snapshot returns a copy of the current preferences.
func (s *Set) Snapshot() Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Apply merges u into the stored preferences, clamping each changed field,
// and returns the resulting snapshot. Persistence runs in the background;
// a save failure is logged and otherwise ignored.
func (s *Set) Apply(u Update) Preferences {
	s.mu.Lock()
	if u.VoiceID != nil {
		s.prefs.VoiceID = *u.VoiceID
	}
	if u.Rate != nil {
		s.prefs.Rate = clampFloat(*u.Rate, 0.5, 2.0)
	}
	if u.Pitch != nil {
		s.prefs.Pitch = clampFloat(*u.Pitch, 0.5, 2.0)
	}
	if u.Volume != nil {
		s.prefs.Volume = clampFloat(*u.Volume, 0.0, 1.0)
	}
	if u.SentenceBreak != nil {
		s.prefs.SentenceBreak = clampDuration(*u.SentenceBreak, 0, 5*time.Second)
	}
	if u.LengthScale != nil {
		s.prefs.LengthScale = clampFloat(*u.LengthScale, 0.1, 3.0)
	}
	if u.NoiseScale != nil {
		s.prefs.NoiseScale = clampFloat(*u.NoiseScale, 0.0, 2.0)
	}
	if u.NoiseW != nil {
		s.prefs.NoiseW = clampFloat(*u.NoiseW, 0.0, 2.0)
	}
	if u.Theme != nil {
		s.prefs.Theme = *u.Theme
	}
	snapshot := s.prefs
	s.mu.Unlock()

	if s.saver != nil {
		go func(p Preferences) {
			if err := s.saver.Save(p); err != nil {
				log.Warn("could not persist preferences", "error", err)
			}
		}(snapshot)
	}

	return snapshot
}

func clampAll(p Preferences) Preferences {
	p.Rate = clampFloat(p.Rate, 0.5, 2.0)
	p.Pitch = clampFloat(p.Pitch, 0.5, 2.0)
	p.Volume = clampFloat(p.Volume, 0.0, 1.0)
	p.SentenceBreak = clampDuration(p.SentenceBreak, 0, 5*time.Second)
	p.LengthScale = clampFloat(p.LengthScale, 0.1, 3.0)
	p.NoiseScale = clampFloat(p.NoiseScale, 0.0, 2.0)
	p.NoiseW = clampFloat(p.NoiseW, 0.0, 2.0)
	return p
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampDuration(v, lo, hi time.Duration) time.Duration {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
