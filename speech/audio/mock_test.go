package audio

import (
	"errors"
	"testing"
)

func TestMockDeliversOneEventPerPlay(t *testing.T) {
	m := NewMockPlayer()
	events, err := m.Play("a.wav")
	if err != nil {
		t.Fatalf("Play() error = %v", err)
	}
	if !m.IsPlaying() {
		t.Error("IsPlaying() = false after Play")
	}

	m.Finish()
	ev := <-events
	if ev.Outcome != Finished {
		t.Errorf("Outcome = %v, want Finished", ev.Outcome)
	}
	if m.IsPlaying() {
		t.Error("IsPlaying() = true after Finish")
	}

	// Finish on an idle player is a no-op, not a second event.
	m.Finish()
	select {
	case ev := <-events:
		t.Errorf("unexpected second event %v", ev)
	default:
	}
}

func TestMockSupersededPlayGetsStopped(t *testing.T) {
	m := NewMockPlayer()
	first, _ := m.Play("a.wav")
	second, _ := m.Play("b.wav")

	if ev := <-first; ev.Outcome != Stopped {
		t.Errorf("superseded playback Outcome = %v, want Stopped", ev.Outcome)
	}

	m.Finish()
	if ev := <-second; ev.Outcome != Finished {
		t.Errorf("current playback Outcome = %v, want Finished", ev.Outcome)
	}

	if got := m.Played(); len(got) != 2 || got[0] != "a.wav" || got[1] != "b.wav" {
		t.Errorf("Played() = %v", got)
	}
}

func TestMockPauseResume(t *testing.T) {
	m := NewMockPlayer()
	if err := m.Pause(); !errors.Is(err, ErrNotPlaying) {
		t.Errorf("Pause() idle error = %v, want ErrNotPlaying", err)
	}

	m.Play("a.wav")
	if err := m.Pause(); err != nil {
		t.Fatalf("Pause() error = %v", err)
	}
	if m.IsPlaying() {
		t.Error("IsPlaying() = true while paused")
	}
	if err := m.Resume(); err != nil {
		t.Fatalf("Resume() error = %v", err)
	}
	if !m.IsPlaying() {
		t.Error("IsPlaying() = false after Resume")
	}
	if err := m.Resume(); !errors.Is(err, ErrNotPaused) {
		t.Errorf("Resume() while playing error = %v, want ErrNotPaused", err)
	}
}

func TestMockStopDeliversStopped(t *testing.T) {
	m := NewMockPlayer()
	events, _ := m.Play("a.wav")
	m.Stop()

	if ev := <-events; ev.Outcome != Stopped {
		t.Errorf("Outcome = %v, want Stopped", ev.Outcome)
	}
	if _, _, stops := m.Counts(); stops != 1 {
		t.Errorf("stop count = %d, want 1", stops)
	}
}

func TestMockFailCarriesError(t *testing.T) {
	m := NewMockPlayer()
	events, _ := m.Play("a.wav")
	cause := errors.New("device gone")
	m.Fail(cause)

	ev := <-events
	if ev.Outcome != Failed || !errors.Is(ev.Err, cause) {
		t.Errorf("event = %+v, want Failed with cause", ev)
	}
}

func TestOutcomeString(t *testing.T) {
	tests := []struct {
		outcome Outcome
		want    string
	}{
		{Finished, "finished"},
		{Stopped, "stopped"},
		{Failed, "failed"},
		{Outcome(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.outcome.String(); got != tt.want {
			t.Errorf("Outcome(%d).String() = %q, want %q", tt.outcome, got, tt.want)
		}
	}
}
