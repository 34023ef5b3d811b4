package app

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/juanpablocruz/pulsetrace/internal/render"
	"github.com/juanpablocruz/pulsetrace/pkg/dispatch"
	"github.com/juanpablocruz/pulsetrace/pkg/wave"
)

type keyMap struct {
	Quit key.Binding
}

var keys = keyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// eventMsg carries one dispatcher event into the bubbletea loop.
type eventMsg struct{ ev dispatch.Event }

// stoppedMsg means the dispatcher closed its stream.
type stoppedMsg struct{}

// Model is the render loop. It handles exactly one dispatcher event per
// message and repaints the whole canvas every View.
type Model struct {
	machine  *wave.Machine
	events   *dispatch.Dispatcher
	canvas   *render.Canvas
	quitting bool
}

func NewModel(m *wave.Machine, d *dispatch.Dispatcher, c *render.Canvas) Model {
	return Model{machine: m, events: d, canvas: c}
}

func waitForEvent(d *dispatch.Dispatcher) tea.Cmd {
	return func() tea.Msg {
		ev, err := d.Next(context.Background())
		if err != nil {
			return stoppedMsg{}
		}
		return eventMsg{ev: ev}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.SetWindowTitle("pulsetrace"),
		waitForEvent(m.events),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		switch msg.ev.Kind {
		case dispatch.KindTick:
			m.machine.Advance()
		case dispatch.KindInput:
			if key.Matches(msg.ev.Key, keys.Quit) {
				m.quitting = true
				return m, tea.Quit
			}
		}
		return m, waitForEvent(m.events)
	case tea.WindowSizeMsg:
		m.canvas.Resize(msg.Width, msg.Height)
	case stoppedMsg:
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.canvas.Frame(m.machine.Points(), m.machine.Cursor())
}
