// Package synth defines the synthesis gateway contract and the local piper
// engine that renders text segments into wav artifacts.
package synth

import (
	"context"
	"errors"
	"time"
)

// Common synthesis errors.
var (
	// ErrVoiceNotFound indicates the requested voice model file is missing.
	ErrVoiceNotFound = errors.New("voice model not found")
	// ErrEngineNotFound indicates no usable synthesis engine could be located.
	ErrEngineNotFound = errors.New("speech engine not found")
	// ErrSynthesisFailed indicates the engine ran but did not produce audio.
	ErrSynthesisFailed = errors.New("synthesis failed")
	// ErrTimeout indicates the engine ran past its deadline.
	ErrTimeout = errors.New("synthesis timed out")
)

// Request carries one segment of text together with the preference snapshot
// taken when the request was built. A Request is ephemeral: it exists for
// the duration of a single Synthesize call and is never stored.
type Request struct {
	Text          string
	VoicePath     string
	Rate          float64
	Pitch         float64
	Volume        float64
	SentenceBreak time.Duration
	LengthScale   float64
	NoiseScale    float64
	NoiseW        float64
}

// Gateway converts one text segment into a rendered audio artifact on disk
// and returns its path. Implementations may take multiple seconds per call
// and must honor ctx cancellation, or at least be abandon-safe: a caller
// that walks away must not corrupt subsequent calls.
type Gateway interface {
	Synthesize(ctx context.Context, req Request) (artifactPath string, err error)
}
