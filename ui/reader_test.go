package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lectorapp/lector/speech"
)

// fakeCommander records which orchestrator commands the view issued.
type fakeCommander struct {
	playFrom []int
	toggles  int
	nexts    int
	stops    int
	snap     speech.Snapshot
}

func (f *fakeCommander) PlayFrom(index int)        { f.playFrom = append(f.playFrom, index) }
func (f *fakeCommander) TogglePlayPause()          { f.toggles++ }
func (f *fakeCommander) PlayNext()                 { f.nexts++ }
func (f *fakeCommander) Stop()                     { f.stops++ }
func (f *fakeCommander) Snapshot() speech.Snapshot { return f.snap }

func newTestModel(t *testing.T, segments ...string) (Model, *fakeCommander) {
	t.Helper()
	orch := &fakeCommander{snap: speech.Snapshot{QueueLen: len(segments)}}
	m := NewModel(orch, segments, make(chan speech.Snapshot))
	sized, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return sized.(Model), orch
}

func keyPress(m Model, k string) Model {
	var msg tea.KeyMsg
	switch k {
	case "enter":
		msg = tea.KeyMsg{Type: tea.KeyEnter}
	case " ":
		msg = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "down":
		msg = tea.KeyMsg{Type: tea.KeyDown}
	case "up":
		msg = tea.KeyMsg{Type: tea.KeyUp}
	default:
		msg = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
	next, _ := m.Update(msg)
	return next.(Model)
}

func TestEnterPlaysFromSelection(t *testing.T) {
	m, orch := newTestModel(t, "Uno", "Dos", "Tres")

	m = keyPress(m, "down")
	m = keyPress(m, "down")
	m = keyPress(m, "enter")

	if len(orch.playFrom) != 1 || orch.playFrom[0] != 2 {
		t.Errorf("playFrom calls = %v, want [2]", orch.playFrom)
	}
}

func TestSelectionStaysInBounds(t *testing.T) {
	m, orch := newTestModel(t, "Uno", "Dos")

	m = keyPress(m, "up")
	m = keyPress(m, "enter")
	if len(orch.playFrom) != 1 || orch.playFrom[0] != 0 {
		t.Fatalf("playFrom = %v, want [0]", orch.playFrom)
	}

	for i := 0; i < 5; i++ {
		m = keyPress(m, "down")
	}
	m = keyPress(m, "enter")
	if got := orch.playFrom[len(orch.playFrom)-1]; got != 1 {
		t.Errorf("selection = %d after overshoot, want 1", got)
	}
}

func TestPlaybackKeys(t *testing.T) {
	m, orch := newTestModel(t, "Uno")

	m = keyPress(m, " ")
	m = keyPress(m, "n")
	m = keyPress(m, "s")

	if orch.toggles != 1 || orch.nexts != 1 || orch.stops != 1 {
		t.Errorf("toggles/nexts/stops = %d/%d/%d, want 1/1/1", orch.toggles, orch.nexts, orch.stops)
	}
}

func TestQuitStopsPlayback(t *testing.T) {
	m, orch := newTestModel(t, "Uno")

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	m = next.(Model)

	if orch.stops != 1 {
		t.Errorf("stops = %d on quit, want 1", orch.stops)
	}
	if cmd == nil {
		t.Fatal("quit produced no command")
	}
}

func TestStateMsgFollowsCursor(t *testing.T) {
	m, _ := newTestModel(t, "Uno", "Dos", "Tres")

	next, cmd := m.Update(StateMsg{Status: speech.StatusPlaying, Cursor: 2, QueueLen: 3})
	m = next.(Model)

	if m.selected != 2 {
		t.Errorf("selected = %d, want to follow the reading cursor", m.selected)
	}
	if cmd == nil {
		t.Error("state message did not re-arm the listener")
	}
	if !strings.Contains(m.View(), "playing") {
		t.Error("status bar does not show the playing state")
	}
	if !strings.Contains(m.View(), "3/3") {
		t.Error("status bar does not show the queue position")
	}
}

func TestFailedStateShowsReason(t *testing.T) {
	m, _ := newTestModel(t, "Uno")

	next, _ := m.Update(StateMsg{
		Status:   speech.StatusFailed,
		QueueLen: 1,
		Err:      errFake,
	})
	m = next.(Model)

	if !strings.Contains(m.View(), "voz rota") {
		t.Error("status bar does not surface the failure reason")
	}
}

var errFake = &fakeError{"voz rota"}

type fakeError struct{ s string }

func (e *fakeError) Error() string { return e.s }
