package tui

import (
	"strings"
	"testing"
	"time"

	"healthydev/internal/core/timekeeper"
	"healthydev/internal/ui/render"

	tea "github.com/charmbracelet/bubbletea"
)

type recordingController struct {
	calls []string
}

func (controller *recordingController) StartBreak() {
	controller.calls = append(controller.calls, "start-break")
}

func (controller *recordingController) Resolve(choice timekeeper.Choice) {
	controller.calls = append(controller.calls, "resolve:"+choice.String())
}

func (controller *recordingController) CloseBreak() {
	controller.calls = append(controller.calls, "close")
}

func key(s string) tea.Msg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func modelIn(state timekeeper.State, controller *recordingController) Model {
	m := New(controller, nil, 10*time.Second)
	updated, _ := m.Update(eventMsg(timekeeper.Event{Type: timekeeper.EventStateChange, State: state, Remaining: 10 * time.Second}))
	return updated.(Model)
}

func TestKeyFlows(t *testing.T) {
	tests := []struct {
		name  string
		state timekeeper.State
		key   string
		want  []string
	}{
		{name: "prompt accept", state: timekeeper.StatePromptingBreak, key: "y", want: []string{"resolve:take_break"}},
		{name: "prompt enter", state: timekeeper.StatePromptingBreak, key: "enter", want: []string{"resolve:take_break"}},
		{name: "prompt later", state: timekeeper.StatePromptingBreak, key: "l", want: []string{"resolve:snooze"}},
		{name: "prompt esc snoozes", state: timekeeper.StatePromptingBreak, key: "esc", want: []string{"resolve:snooze"}},
		{name: "working break now", state: timekeeper.StateWorking, key: "b", want: []string{"start-break"}},
		{name: "snoozed break now", state: timekeeper.StateSnoozed, key: "b", want: []string{"start-break"}},
		{name: "working ignores close", state: timekeeper.StateWorking, key: "c", want: nil},
		{name: "break close", state: timekeeper.StateOnBreak, key: "c", want: []string{"close"}},
		{name: "break ignores restart", state: timekeeper.StateOnBreak, key: "b", want: nil},
		{name: "break over close", state: timekeeper.StateBreakOver, key: "esc", want: []string{"close"}},
		{name: "break over restart", state: timekeeper.StateBreakOver, key: "b", want: []string{"start-break"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			controller := &recordingController{}
			m := modelIn(tt.state, controller)

			_, cmd := m.Update(key(tt.key))
			if cmd != nil {
				t.Fatalf("unexpected command for key %q", tt.key)
			}
			if strings.Join(controller.calls, ",") != strings.Join(tt.want, ",") {
				t.Fatalf("calls = %v, want %v", controller.calls, tt.want)
			}
		})
	}
}

func TestQuitKey(t *testing.T) {
	m := modelIn(timekeeper.StateWorking, &recordingController{})
	_, cmd := m.Update(key("q"))
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestClosedSubscriptionQuits(t *testing.T) {
	m := New(&recordingController{}, nil, time.Second)
	_, cmd := m.Update(closedMsg{})
	if cmd == nil {
		t.Fatalf("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatalf("expected tea.QuitMsg")
	}
}

func TestWaitForEventReadsSubscription(t *testing.T) {
	events := make(chan timekeeper.Event, 1)
	events <- timekeeper.Event{Type: timekeeper.EventWorkTick, State: timekeeper.StateWorking, Elapsed: time.Second}

	msg := waitForEvent(events)()
	event, ok := msg.(eventMsg)
	if !ok || event.Elapsed != time.Second {
		t.Fatalf("waitForEvent() = %#v", msg)
	}

	close(events)
	if _, ok := waitForEvent(events)().(closedMsg); !ok {
		t.Fatalf("expected closedMsg after close")
	}
}

func TestViewShowsStatusAndHelp(t *testing.T) {
	m := modelIn(timekeeper.StateWorking, &recordingController{})
	updated, _ := m.Update(eventMsg(timekeeper.Event{Type: timekeeper.EventWorkTick, State: timekeeper.StateWorking, Elapsed: 61 * time.Second}))

	view := updated.(Model).View()
	if !strings.Contains(view, "00:01:01") {
		t.Fatalf("expected elapsed time in view: %q", view)
	}
	if !strings.Contains(view, "break now") {
		t.Fatalf("expected help in view: %q", view)
	}
}

func TestViewShowsPrompt(t *testing.T) {
	view := modelIn(timekeeper.StatePromptingBreak, &recordingController{}).View()
	if !strings.Contains(view, render.PromptAccept) || !strings.Contains(view, render.PromptSnooze) {
		t.Fatalf("expected prompt choices in view: %q", view)
	}
}

func TestViewShowsCountdownThenBreakOver(t *testing.T) {
	m := modelIn(timekeeper.StateOnBreak, &recordingController{})
	updated, _ := m.Update(eventMsg(timekeeper.Event{Type: timekeeper.EventBreakTick, State: timekeeper.StateOnBreak, Remaining: 8 * time.Second}))
	m = updated.(Model)

	if view := m.View(); !strings.Contains(view, "Relax timer : 00:00:08") {
		t.Fatalf("expected countdown in view: %q", view)
	}
	if progress := m.breakProgress(false); progress < 0.19 || progress > 0.21 {
		t.Fatalf("breakProgress() = %v, want 0.2", progress)
	}

	updated, _ = m.Update(eventMsg(timekeeper.Event{Type: timekeeper.EventStateChange, State: timekeeper.StateBreakOver}))
	if view := updated.(Model).View(); !strings.Contains(view, render.BreakOverText) {
		t.Fatalf("expected break over text in view: %q", view)
	}
}
