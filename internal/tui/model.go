// Package tui is the terminal front-end: a status line, the break prompt and
// the break overlay rendered with bubbletea.
package tui

import (
	"time"

	"healthydev/internal/core/timekeeper"
	"healthydev/internal/ui/render"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const maxBarWidth = 60

// Controller is the part of the TimeKeeper the terminal drives.
type Controller interface {
	StartBreak()
	Resolve(choice timekeeper.Choice)
	CloseBreak()
}

type eventMsg timekeeper.Event

type closedMsg struct{}

// Model is the bubbletea model. State only changes in response to keeper
// events; keys are forwarded to the controller.
type Model struct {
	controller    Controller
	events        <-chan timekeeper.Event
	breakDuration time.Duration
	state         timekeeper.State
	elapsed       time.Duration
	remaining     time.Duration
	width         int
	bar           progress.Model
}

// New creates a model reading events from the keeper subscription.
func New(controller Controller, events <-chan timekeeper.Event, breakDuration time.Duration) Model {
	bar := progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage())
	bar.Width = 40
	return Model{
		controller:    controller,
		events:        events,
		breakDuration: breakDuration,
		state:         timekeeper.StateIdle,
		bar:           bar,
	}
}

// Run starts the program on the alternate screen and blocks until it quits.
func Run(controller Controller, events <-chan timekeeper.Event, breakDuration time.Duration, options ...tea.ProgramOption) error {
	options = append([]tea.ProgramOption{tea.WithAltScreen()}, options...)
	_, err := tea.NewProgram(New(controller, events, breakDuration), options...).Run()
	return err
}

func waitForEvent(events <-chan timekeeper.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.bar.Width = min(max(msg.Width-12, 10), maxBarWidth)
		return m, nil
	case eventMsg:
		m.applyEvent(timekeeper.Event(msg))
		return m, waitForEvent(m.events)
	case closedMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(key string) (tea.Model, tea.Cmd) {
	if key == "q" || key == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.state == timekeeper.StatePromptingBreak:
		switch key {
		case "y", "b", "enter":
			m.controller.Resolve(timekeeper.ChoiceTakeBreak)
		case "n", "l", "esc":
			m.controller.Resolve(timekeeper.ChoiceSnooze)
		}
	case m.state.InBreak():
		switch key {
		case "c", "esc", "enter":
			m.controller.CloseBreak()
		case "b":
			if m.state == timekeeper.StateBreakOver {
				m.controller.StartBreak()
			}
		}
	case m.state.Working():
		if key == "b" {
			m.controller.StartBreak()
		}
	}
	return m, nil
}

func (m *Model) applyEvent(event timekeeper.Event) {
	m.state = event.State
	switch event.Type {
	case timekeeper.EventWorkTick:
		m.elapsed = event.Elapsed
	case timekeeper.EventBreakTick:
		m.remaining = event.Remaining
	case timekeeper.EventStateChange:
		m.elapsed = event.Elapsed
		m.remaining = event.Remaining
	}
}

func (m Model) View() string {
	sections := []string{
		titleStyle.Render("healthydev"),
		m.statusLine(),
	}

	switch {
	case m.state == timekeeper.StatePromptingBreak:
		sections = append(sections,
			promptStyle.Render(render.PromptMessage+"\n\n"+
				"[y] "+render.PromptAccept+"   [l] "+render.PromptSnooze),
		)
	case m.state.InBreak():
		sections = append(sections, m.overlayView(), helpStyle.Render("[c] close   [q] quit"))
	default:
		sections = append(sections, helpStyle.Render("[b] break now   [q] quit"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func (m Model) statusLine() string {
	label := render.StatusLabel(m.state, m.elapsed)
	if m.state == timekeeper.StateSnoozed {
		return snoozeStyle.Render(label)
	}
	return statusStyle.Render(label)
}

func (m Model) overlayView() string {
	over := m.state == timekeeper.StateBreakOver
	lines := []string{
		headingStyle.Render(render.OverlayHeading),
		"",
		countdownStyle.Render(render.CountdownText(m.remaining, over)),
		"",
		m.bar.ViewAs(m.breakProgress(over)),
	}
	return overlayStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) breakProgress(over bool) float64 {
	if over || m.breakDuration <= 0 {
		return 1
	}
	done := float64(m.breakDuration-m.remaining) / float64(m.breakDuration)
	return min(max(done, 0), 1)
}
