// Package ui implements the terminal reading view: the paragraph list,
// playback status bar and key bindings that drive the orchestrator.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"github.com/lectorapp/lector/speech"
)

// Commander is the slice of the orchestrator the view drives.
type Commander interface {
	PlayFrom(index int)
	TogglePlayPause()
	PlayNext()
	Stop()
	Snapshot() speech.Snapshot
}

// StateMsg delivers an orchestrator snapshot into the update loop.
type StateMsg speech.Snapshot

// keyMap holds the reading view bindings.
type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Play   key.Binding
	Toggle key.Binding
	Next   key.Binding
	Stop   key.Binding
	Quit   key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Play:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "read from here")),
		Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		Next:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next paragraph")),
		Stop:   key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "stop")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// Model is the bubbletea model for the reading view.
type Model struct {
	orch     Commander
	segments []string
	events   <-chan speech.Snapshot

	viewport viewport.Model
	keys     keyMap
	styles   styles

	selected int
	state    speech.Snapshot
	ready    bool
}

// NewModel builds the reading view over segments. The events channel is
// fed by the orchestrator's change callback; the model keeps one listen
// command pending on it at all times.
func NewModel(orch Commander, segments []string, events <-chan speech.Snapshot) Model {
	return Model{
		orch:     orch,
		segments: segments,
		events:   events,
		keys:     defaultKeyMap(),
		styles:   defaultStyles(),
		state:    orch.Snapshot(),
	}
}

// listen waits for the next orchestrator state change.
func (m Model) listen() tea.Cmd {
	return func() tea.Msg {
		snap, ok := <-m.events
		if !ok {
			return nil
		}
		return StateMsg(snap)
	}
}

func (m Model) Init() tea.Cmd {
	return m.listen()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		statusHeight := 1
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-statusHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - statusHeight
		}
		m.viewport.SetContent(m.renderSegments())

	case StateMsg:
		m.state = speech.Snapshot(msg)
		if m.state.Status.Active() {
			// Reading follows the voice.
			m.selected = m.state.Cursor
		}
		if m.ready {
			m.viewport.SetContent(m.renderSegments())
		}
		cmds = append(cmds, m.listen())

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.orch.Stop()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Up):
			if m.selected > 0 {
				m.selected--
			}
		case key.Matches(msg, m.keys.Down):
			if m.selected < len(m.segments)-1 {
				m.selected++
			}
		case key.Matches(msg, m.keys.Play):
			m.orch.PlayFrom(m.selected)
		case key.Matches(msg, m.keys.Toggle):
			m.orch.TogglePlayPause()
		case key.Matches(msg, m.keys.Next):
			m.orch.PlayNext()
		case key.Matches(msg, m.keys.Stop):
			m.orch.Stop()
		}
		if m.ready {
			m.viewport.SetContent(m.renderSegments())
		}
	}

	if m.ready {
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	if !m.ready {
		return "\n  cargando..."
	}
	return m.viewport.View() + "\n" + m.statusBar()
}

// renderSegments lays out the paragraph list, marking the selection and
// the segment currently being read.
func (m Model) renderSegments() string {
	width := m.viewport.Width - 4
	if width < 10 {
		width = 10
	}

	var b strings.Builder
	for i, segment := range m.segments {
		wrapped := wordwrap.String(segment, width)
		switch {
		case m.state.Status.Active() && i == m.state.Cursor:
			b.WriteString(m.styles.Reading.Render(wrapped))
		case i == m.selected:
			b.WriteString(m.styles.Selected.Render(wrapped))
		default:
			b.WriteString(m.styles.Paragraph.Render(wrapped))
		}
		b.WriteString("\n\n")
	}
	return b.String()
}

// statusBar renders one line of playback state.
func (m Model) statusBar() string {
	label := m.state.Status.String()
	if m.state.Status == speech.StatusFailed && m.state.Err != nil {
		label = fmt.Sprintf("failed: %v", m.state.Err)
	}

	position := ""
	if m.state.QueueLen > 0 {
		position = fmt.Sprintf(" %d/%d", m.state.Cursor+1, m.state.QueueLen)
	}

	left := m.styles.StatusBadge.Render(label) + m.styles.StatusText.Render(position)
	help := m.styles.Help.Render("space play/pause · enter read here · n next · s stop · q quit")

	gap := m.viewport.Width - lipglossWidth(left) - lipglossWidth(help)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + help
}
