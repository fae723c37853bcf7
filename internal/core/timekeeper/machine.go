package timekeeper

import (
	"time"

	"healthydev/internal/core/model"
)

// Input is a stimulus fed to Step.
type Input int

const (
	InputWorkTick Input = iota
	InputBreakTick
	InputStartBreak
	InputTakeBreak
	InputSnooze
	InputCloseBreak
)

func (input Input) String() string {
	switch input {
	case InputWorkTick:
		return "work_tick"
	case InputBreakTick:
		return "break_tick"
	case InputStartBreak:
		return "start_break"
	case InputTakeBreak:
		return "take_break"
	case InputSnooze:
		return "snooze"
	case InputCloseBreak:
		return "close_break"
	default:
		return "unknown"
	}
}

// PollMode is the periodic poll a state requires.
type PollMode int

const (
	PollNone PollMode = iota
	PollWork
	PollBreak
)

func (mode PollMode) String() string {
	switch mode {
	case PollWork:
		return "work"
	case PollBreak:
		return "break"
	default:
		return "none"
	}
}

// Session tracks the work period. Start is fixed when the keeper starts.
type Session struct {
	Start     time.Time
	NextBreak time.Time
}

// BreakState exists from break start until the overlay is closed.
type BreakState struct {
	Start    time.Time
	Duration time.Duration
}

// Remaining returns the break time left at now, clamped to zero.
func (breakState BreakState) Remaining(now time.Time) time.Duration {
	remaining := breakState.Duration - now.Sub(breakState.Start)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Snapshot is the complete state owned by a TimeKeeper.
type Snapshot struct {
	State   State
	Session Session
	Break   BreakState
}

// Poll returns the poll mode the snapshot's state requires.
func (snapshot Snapshot) Poll() PollMode {
	switch {
	case snapshot.State.Working():
		return PollWork
	case snapshot.State == StateOnBreak:
		return PollBreak
	default:
		return PollNone
	}
}

// Elapsed returns the time since the session started, clamped to zero.
func (snapshot Snapshot) Elapsed(now time.Time) time.Duration {
	elapsed := now.Sub(snapshot.Session.Start)
	if elapsed < 0 {
		return 0
	}
	return elapsed
}

// NewSession returns the Working snapshot for a session starting at now.
func NewSession(now time.Time, config model.TimerConfig) Snapshot {
	return Snapshot{
		State: StateWorking,
		Session: Session{
			Start:     now,
			NextBreak: now.Add(config.WorkInterval),
		},
	}
}

// Step applies input to snapshot at now. It does not mutate its arguments and
// returns the next snapshot with the events observers should receive. Inputs
// that do not apply to the current state return the snapshot unchanged and no
// events.
func Step(snapshot Snapshot, input Input, now time.Time, config model.TimerConfig) (Snapshot, []Event) {
	switch input {
	case InputWorkTick:
		if !snapshot.State.Working() {
			return snapshot, nil
		}
		events := []Event{{
			Type:    EventWorkTick,
			State:   snapshot.State,
			Elapsed: snapshot.Elapsed(now),
			At:      now,
		}}
		if now.Before(snapshot.Session.NextBreak) {
			return snapshot, events
		}
		snapshot.State = StatePromptingBreak
		return snapshot, append(events, stateChange(snapshot, now))

	case InputBreakTick:
		if snapshot.State != StateOnBreak {
			return snapshot, nil
		}
		remaining := snapshot.Break.Remaining(now)
		if remaining > 0 {
			return snapshot, []Event{{
				Type:      EventBreakTick,
				State:     snapshot.State,
				Remaining: remaining,
				At:        now,
			}}
		}
		snapshot.State = StateBreakOver
		return snapshot, []Event{stateChange(snapshot, now)}

	case InputStartBreak:
		if snapshot.State == StateOnBreak || snapshot.State == StateIdle {
			return snapshot, nil
		}
		return startBreak(snapshot, now, config)

	case InputTakeBreak:
		if snapshot.State != StatePromptingBreak {
			return snapshot, nil
		}
		return startBreak(snapshot, now, config)

	case InputSnooze:
		if snapshot.State != StatePromptingBreak {
			return snapshot, nil
		}
		snapshot.State = StateSnoozed
		snapshot.Session.NextBreak = now.Add(config.SnoozeInterval)
		return snapshot, []Event{stateChange(snapshot, now)}

	case InputCloseBreak:
		if !snapshot.State.InBreak() {
			return snapshot, nil
		}
		snapshot.State = StateWorking
		snapshot.Break = BreakState{}
		snapshot.Session.NextBreak = now.Add(config.WorkInterval)
		return snapshot, []Event{stateChange(snapshot, now)}
	}
	return snapshot, nil
}

func startBreak(snapshot Snapshot, now time.Time, config model.TimerConfig) (Snapshot, []Event) {
	snapshot.State = StateOnBreak
	snapshot.Break = BreakState{Start: now, Duration: config.BreakDuration}
	return snapshot, []Event{stateChange(snapshot, now)}
}

func stateChange(snapshot Snapshot, now time.Time) Event {
	event := Event{
		Type:    EventStateChange,
		State:   snapshot.State,
		Elapsed: snapshot.Elapsed(now),
		At:      now,
	}
	if snapshot.State == StateOnBreak {
		event.Remaining = snapshot.Break.Remaining(now)
	}
	return event
}
