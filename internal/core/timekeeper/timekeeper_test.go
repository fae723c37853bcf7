package timekeeper

import (
	"sync"
	"testing"
	"time"

	"healthydev/internal/core/model"
	"healthydev/internal/logging"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (clock *fakeClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.now
}

func (clock *fakeClock) Advance(delta time.Duration) {
	clock.mu.Lock()
	clock.now = clock.now.Add(delta)
	clock.mu.Unlock()
}

// newManualKeeper returns a keeper whose ticker never fires during a test, so
// ticks are delivered with tickActive.
func newManualKeeper(t *testing.T) (*TimeKeeper, *fakeClock, <-chan Event) {
	t.Helper()
	clock := &fakeClock{now: epoch}
	keeper := New(testConfig, Config{
		TickInterval: time.Hour,
		Clock:        clock,
		Logger:       logging.Discard(),
	})
	events := keeper.Subscribe(64)
	keeper.Start()
	t.Cleanup(keeper.Stop)
	return keeper, clock, events
}

func tickActive(keeper *TimeKeeper) {
	keeper.mu.Lock()
	mode, generation := keeper.poll, keeper.pollGen
	keeper.mu.Unlock()
	keeper.pollTick(mode, generation)
}

func drain(events <-chan Event) []Event {
	var drained []Event
	for {
		select {
		case event, ok := <-events:
			if !ok {
				return drained
			}
			drained = append(drained, event)
		default:
			return drained
		}
	}
}

func stateChanges(events []Event, state State) int {
	count := 0
	for _, event := range events {
		if event.Type == EventStateChange && event.State == state {
			count++
		}
	}
	return count
}

func TestStartEmitsWorkingAndStartsWorkPoll(t *testing.T) {
	keeper, _, events := newManualKeeper(t)

	if got := stateChanges(drain(events), StateWorking); got != 1 {
		t.Fatalf("working state changes = %d, want 1", got)
	}
	if keeper.ActivePoll() != PollWork {
		t.Fatalf("ActivePoll() = %v, want work", keeper.ActivePoll())
	}
}

func TestWorkTickReportsElapsed(t *testing.T) {
	keeper, clock, events := newManualKeeper(t)
	drain(events)

	clock.Advance(61 * time.Second)
	tickActive(keeper)

	got := drain(events)
	if len(got) != 1 || got[0].Type != EventWorkTick || got[0].Elapsed != 61*time.Second {
		t.Fatalf("events = %+v", got)
	}
}

func TestPromptSuspendsWorkPoll(t *testing.T) {
	keeper, clock, events := newManualKeeper(t)
	drain(events)

	clock.Advance(testConfig.WorkInterval)
	tickActive(keeper)
	tickActive(keeper)
	clock.Advance(time.Minute)
	tickActive(keeper)

	if got := stateChanges(drain(events), StatePromptingBreak); got != 1 {
		t.Fatalf("prompts = %d, want 1", got)
	}
	if keeper.ActivePoll() != PollNone {
		t.Fatalf("ActivePoll() = %v, want none while prompting", keeper.ActivePoll())
	}
}

func TestSnoozeResumesWorkPoll(t *testing.T) {
	keeper, clock, events := newManualKeeper(t)
	clock.Advance(testConfig.WorkInterval)
	tickActive(keeper)
	drain(events)

	keeper.Resolve(ChoiceSnooze)

	snapshot := keeper.Snapshot()
	if snapshot.State != StateSnoozed {
		t.Fatalf("State = %q, want snoozed", snapshot.State)
	}
	want := clock.Now().Add(testConfig.SnoozeInterval)
	if !snapshot.Session.NextBreak.Equal(want) {
		t.Fatalf("NextBreak = %v, want %v", snapshot.Session.NextBreak, want)
	}
	if keeper.ActivePoll() != PollWork {
		t.Fatalf("ActivePoll() = %v, want work", keeper.ActivePoll())
	}
}

func TestBreakLifecycle(t *testing.T) {
	keeper, clock, events := newManualKeeper(t)
	clock.Advance(testConfig.WorkInterval)
	tickActive(keeper)
	keeper.Resolve(ChoiceTakeBreak)

	if keeper.ActivePoll() != PollBreak {
		t.Fatalf("ActivePoll() = %v, want break", keeper.ActivePoll())
	}

	clock.Advance(testConfig.BreakDuration / 2)
	tickActive(keeper)
	clock.Advance(testConfig.BreakDuration / 2)
	tickActive(keeper)

	if state := keeper.Snapshot().State; state != StateBreakOver {
		t.Fatalf("State = %q, want break_over", state)
	}
	if keeper.ActivePoll() != PollNone {
		t.Fatalf("ActivePoll() = %v, want none after break", keeper.ActivePoll())
	}
	drain(events)

	keeper.CloseBreak()
	keeper.CloseBreak()

	got := drain(events)
	if resets := stateChanges(got, StateWorking); resets != 1 {
		t.Fatalf("resets = %d, want 1 (events %+v)", resets, got)
	}
	if keeper.ActivePoll() != PollWork {
		t.Fatalf("ActivePoll() = %v, want work", keeper.ActivePoll())
	}
	want := clock.Now().Add(testConfig.WorkInterval)
	if next := keeper.Snapshot().Session.NextBreak; !next.Equal(want) {
		t.Fatalf("NextBreak = %v, want %v", next, want)
	}
}

func TestStartBreakStopsWorkPollFirst(t *testing.T) {
	keeper, _, _ := newManualKeeper(t)

	keeper.mu.Lock()
	workStop := keeper.pollStop
	keeper.mu.Unlock()

	keeper.StartBreak()

	select {
	case <-workStop:
	default:
		t.Fatalf("work poll still running after StartBreak")
	}
	if keeper.ActivePoll() != PollBreak {
		t.Fatalf("ActivePoll() = %v, want break", keeper.ActivePoll())
	}
}

func TestStaleTickIgnored(t *testing.T) {
	keeper, clock, events := newManualKeeper(t)

	keeper.mu.Lock()
	workGeneration := keeper.pollGen
	keeper.mu.Unlock()

	keeper.StartBreak()
	drain(events)

	clock.Advance(testConfig.WorkInterval)
	keeper.pollTick(PollWork, workGeneration)

	if got := drain(events); len(got) != 0 {
		t.Fatalf("stale work tick produced %+v", got)
	}
	if state := keeper.Snapshot().State; state != StateOnBreak {
		t.Fatalf("State = %q, want on_break", state)
	}
}

func TestUpdateConfigResetsWorkDeadline(t *testing.T) {
	keeper, clock, _ := newManualKeeper(t)
	clock.Advance(time.Minute)

	updated := model.TimerConfig{WorkInterval: 20 * time.Minute}
	keeper.UpdateConfig(updated)

	if got := keeper.Config(); got.SnoozeInterval != model.DefaultSnoozeInterval {
		t.Fatalf("SnoozeInterval = %v, want default", got.SnoozeInterval)
	}
	want := clock.Now().Add(20 * time.Minute)
	if next := keeper.Snapshot().Session.NextBreak; !next.Equal(want) {
		t.Fatalf("NextBreak = %v, want %v", next, want)
	}
}

func TestStopClosesSubscribersAndIgnoresCommands(t *testing.T) {
	keeper, _, events := newManualKeeper(t)
	keeper.Stop()

	drain(events)
	if _, ok := <-events; ok {
		t.Fatalf("subscriber channel still open after Stop")
	}

	keeper.StartBreak()
	if state := keeper.Snapshot().State; state != StateIdle {
		t.Fatalf("State = %q, want idle after Stop", state)
	}
	if keeper.ActivePoll() != PollNone {
		t.Fatalf("ActivePoll() = %v, want none", keeper.ActivePoll())
	}
}

func TestRealTickerPrompts(t *testing.T) {
	keeper := New(model.TimerConfig{
		WorkInterval:   30 * time.Millisecond,
		SnoozeInterval: time.Minute,
		BreakDuration:  time.Second,
	}, Config{TickInterval: 5 * time.Millisecond, Logger: logging.Discard()})
	events := keeper.Subscribe(64)
	keeper.Start()
	defer keeper.Stop()

	timeout := time.After(2 * time.Second)
	for {
		select {
		case event := <-events:
			if event.Type == EventStateChange && event.State == StatePromptingBreak {
				if keeper.ActivePoll() != PollNone {
					t.Fatalf("ActivePoll() = %v after prompt", keeper.ActivePoll())
				}
				return
			}
		case <-timeout:
			t.Fatalf("no prompt within timeout")
		}
	}
}
