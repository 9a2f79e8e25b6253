// Package audio defines the playback gateway contract and the speaker-backed
// player that renders wav artifacts produced by synthesis.
package audio

import "errors"

// Common playback errors.
var (
	// ErrArtifactMissing indicates the audio file could not be opened.
	ErrArtifactMissing = errors.New("audio artifact missing")
	// ErrArtifactCorrupt indicates the audio file could not be decoded.
	ErrArtifactCorrupt = errors.New("audio artifact corrupt")
	// ErrDeviceUnavailable indicates no output device could be opened.
	ErrDeviceUnavailable = errors.New("audio device unavailable")
	// ErrNotPlaying is returned by Pause when nothing is playing.
	ErrNotPlaying = errors.New("nothing is playing")
	// ErrNotPaused is returned by Resume when playback is not paused.
	ErrNotPaused = errors.New("playback is not paused")
)

// Outcome classifies how one playback ended.
type Outcome int

const (
	// Finished means the artifact played to its natural end.
	Finished Outcome = iota
	// Stopped means playback was cut short by an explicit Stop or by a new
	// Play superseding it.
	Stopped
	// Failed means the device or decoder reported an error mid-playback.
	Failed
)

// String returns the lowercase name of the outcome.
func (o Outcome) String() string {
	switch o {
	case Finished:
		return "finished"
	case Stopped:
		return "stopped"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is the single completion notification for one Play call.
type Event struct {
	Outcome Outcome
	Err     error
}

// Gateway plays rendered audio artifacts. Play returns a channel that
// receives exactly one Event, any time after Play returns: Finished,
// Stopped, or Failed. Pause and Resume operate on the artifact currently
// loaded; Stop tears playback down and delivers a Stopped event.
type Gateway interface {
	Play(path string) (<-chan Event, error)
	Pause() error
	Resume() error
	Stop() error
	SetVolume(v float64)
	IsPlaying() bool
}
