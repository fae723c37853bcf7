package timekeeper

import "time"

// State represents the current TimeKeeper mode.
type State string

const (
	StateIdle           State = "idle"
	StateWorking        State = "working"
	StateSnoozed        State = "snoozed"
	StatePromptingBreak State = "prompting_break"
	StateOnBreak        State = "on_break"
	StateBreakOver      State = "break_over"
)

// Working reports whether the work poll should run in this state.
func (state State) Working() bool {
	return state == StateWorking || state == StateSnoozed
}

// InBreak reports whether the break overlay is showing.
func (state State) InBreak() bool {
	return state == StateOnBreak || state == StateBreakOver
}

// Choice is the user's answer to a break prompt.
type Choice int

const (
	ChoiceTakeBreak Choice = iota
	ChoiceSnooze
)

func (choice Choice) String() string {
	switch choice {
	case ChoiceTakeBreak:
		return "take_break"
	case ChoiceSnooze:
		return "snooze"
	default:
		return "unknown"
	}
}

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange EventType = "state_change"
	EventWorkTick    EventType = "work_tick"
	EventBreakTick   EventType = "break_tick"
)

// Event represents a TimeKeeper update for observers.
//
// Elapsed is the time since the session started and is set on work ticks and
// state changes. Remaining is the break time left and is set while in a break.
type Event struct {
	Type      EventType
	State     State
	Elapsed   time.Duration
	Remaining time.Duration
	At        time.Time
}
