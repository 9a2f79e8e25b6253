// Package speech contains the playback orchestration core: the state
// machine that walks the reading queue, drives the synthesis and playback
// gateways one segment at a time, and keeps the "what is happening now"
// answer consistent under concurrent completion events and user commands.
package speech

// Status is the playback state. Exactly one value is active at a time and
// only the Orchestrator mutates it.
type Status int

const (
	// StatusIdle means nothing is playing or queued to play.
	StatusIdle Status = iota
	// StatusSynthesizing means a synthesis request is in flight for the
	// cursor segment.
	StatusSynthesizing
	// StatusPlaying means the cursor segment's artifact is sounding.
	StatusPlaying
	// StatusPaused means playback is halted mid-artifact and resumable.
	StatusPaused
	// StatusFailed means synthesis or playback failed; the reason is
	// retained and nothing moves until the next explicit command.
	StatusFailed
)

// String returns the lowercase name of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusSynthesizing:
		return "synthesizing"
	case StatusPlaying:
		return "playing"
	case StatusPaused:
		return "paused"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Active reports whether the orchestrator is mid-flight: synthesizing,
// playing, or paused.
func (s Status) Active() bool {
	return s == StatusSynthesizing || s == StatusPlaying || s == StatusPaused
}

// Snapshot is a consistent copy of the orchestrator's observable state,
// delivered to change subscribers and returned by the Snapshot accessor.
type Snapshot struct {
	Status   Status
	Cursor   int
	QueueLen int
	Err      error
}
