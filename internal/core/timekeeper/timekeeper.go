package timekeeper

import (
	"sync"
	"time"

	"healthydev/internal/core/clock"
	"healthydev/internal/core/model"
	"healthydev/internal/logging"

	"github.com/charmbracelet/log"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	Clock        clock.Clock
	Logger       *log.Logger
}

// TimeKeeper owns the session state and the single active poll. All state
// changes go through Step.
type TimeKeeper struct {
	mu       sync.Mutex
	sendMu   sync.RWMutex
	config   model.TimerConfig
	options  Config
	snapshot Snapshot
	events   []chan Event
	stopCh   chan struct{}
	running  bool
	poll     PollMode
	pollStop chan struct{}
	pollGen  uint64
}

// New creates a TimeKeeper with the provided configuration. Zero durations in
// config fall back to the defaults.
func New(config model.TimerConfig, options Config) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = clock.System
	}
	if options.Logger == nil {
		options.Logger = logging.Default()
	}

	return &TimeKeeper{
		config:   config.WithDefaults(),
		options:  options,
		snapshot: Snapshot{State: StateIdle},
		stopCh:   make(chan struct{}),
	}
}

// Subscribe registers a new observer channel. Channels are closed by Stop.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	keeper.events = append(keeper.events, ch)
	keeper.mu.Unlock()
	return ch
}

// Start opens a new session and launches the work poll.
func (keeper *TimeKeeper) Start() {
	keeper.mu.Lock()
	if keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = true
	keeper.stopCh = make(chan struct{})
	now := keeper.options.Clock.Now()
	keeper.snapshot = NewSession(now, keeper.config)
	keeper.options.Logger.Debug("session started", "next_break", keeper.snapshot.Session.NextBreak.Format(time.TimeOnly))
	keeper.syncPollLocked()
	events := []Event{stateChange(keeper.snapshot, now)}
	subscribers, stop := keeper.subscribersLocked()
	keeper.mu.Unlock()

	keeper.deliver(subscribers, stop, events)
}

// Stop terminates the active poll and closes observers.
func (keeper *TimeKeeper) Stop() {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	keeper.running = false
	keeper.stopPollLocked()
	keeper.snapshot.State = StateIdle
	close(keeper.stopCh)
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	keeper.sendMu.Lock()
	for _, ch := range events {
		close(ch)
	}
	keeper.sendMu.Unlock()
	keeper.options.Logger.Debug("session stopped")
}

// StartBreak begins a break immediately, from any state except an active break.
func (keeper *TimeKeeper) StartBreak() {
	keeper.apply(InputStartBreak)
}

// Resolve feeds the user's answer to the break prompt back into the machine.
func (keeper *TimeKeeper) Resolve(choice Choice) {
	switch choice {
	case ChoiceTakeBreak:
		keeper.apply(InputTakeBreak)
	case ChoiceSnooze:
		keeper.apply(InputSnooze)
	}
}

// CloseBreak ends the break and starts a new work period.
func (keeper *TimeKeeper) CloseBreak() {
	keeper.apply(InputCloseBreak)
}

// UpdateConfig replaces the timer config. A running work period restarts with
// the new interval.
func (keeper *TimeKeeper) UpdateConfig(config model.TimerConfig) {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	keeper.config = config.WithDefaults()
	if keeper.running && keeper.snapshot.State.Working() {
		keeper.snapshot.Session.NextBreak = keeper.options.Clock.Now().Add(keeper.config.WorkInterval)
	}
}

// Config returns the active timer config.
func (keeper *TimeKeeper) Config() model.TimerConfig {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.config
}

// Snapshot returns a copy of the current state.
func (keeper *TimeKeeper) Snapshot() Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.snapshot
}

// ActivePoll reports which poll is running.
func (keeper *TimeKeeper) ActivePoll() PollMode {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.poll
}

func (keeper *TimeKeeper) apply(input Input) {
	keeper.mu.Lock()
	if !keeper.running {
		keeper.mu.Unlock()
		return
	}
	events := keeper.applyLocked(input)
	subscribers, stop := keeper.subscribersLocked()
	keeper.mu.Unlock()

	keeper.deliver(subscribers, stop, events)
}

func (keeper *TimeKeeper) applyLocked(input Input) []Event {
	now := keeper.options.Clock.Now()
	previous := keeper.snapshot.State
	next, events := Step(keeper.snapshot, input, now, keeper.config)
	keeper.snapshot = next
	if next.State != previous {
		keeper.options.Logger.Debug("state change", "input", input, "from", previous, "to", next.State)
	}
	keeper.syncPollLocked()
	return events
}

// syncPollLocked makes the running poll match the snapshot. The old poll is
// always stopped before a new one starts.
func (keeper *TimeKeeper) syncPollLocked() {
	want := keeper.snapshot.Poll()
	if !keeper.running {
		want = PollNone
	}
	if want == keeper.poll {
		return
	}
	keeper.stopPollLocked()
	if want == PollNone {
		return
	}

	keeper.pollGen++
	stop := make(chan struct{})
	keeper.poll = want
	keeper.pollStop = stop
	keeper.options.Logger.Debug("poll started", "mode", want)
	go keeper.runPoll(want, keeper.pollGen, stop)
}

func (keeper *TimeKeeper) stopPollLocked() {
	if keeper.pollStop != nil {
		close(keeper.pollStop)
		keeper.pollStop = nil
		keeper.options.Logger.Debug("poll stopped", "mode", keeper.poll)
	}
	keeper.poll = PollNone
}

func (keeper *TimeKeeper) runPoll(mode PollMode, generation uint64, stop <-chan struct{}) {
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			keeper.pollTick(mode, generation)
		}
	}
}

// pollTick handles one tick. Ticks from a superseded poll are discarded.
func (keeper *TimeKeeper) pollTick(mode PollMode, generation uint64) {
	keeper.mu.Lock()
	if !keeper.running || mode == PollNone || keeper.poll != mode || keeper.pollGen != generation {
		keeper.mu.Unlock()
		return
	}
	input := InputWorkTick
	if mode == PollBreak {
		input = InputBreakTick
	}
	events := keeper.applyLocked(input)
	subscribers, stop := keeper.subscribersLocked()
	keeper.mu.Unlock()

	keeper.deliver(subscribers, stop, events)
}

func (keeper *TimeKeeper) subscribersLocked() ([]chan Event, <-chan struct{}) {
	return append([]chan Event(nil), keeper.events...), keeper.stopCh
}

// deliver sends events outside the state lock. Ticks are dropped for slow
// observers; state changes wait until received or the keeper stops.
func (keeper *TimeKeeper) deliver(subscribers []chan Event, stop <-chan struct{}, events []Event) {
	if len(events) == 0 || len(subscribers) == 0 {
		return
	}
	keeper.sendMu.RLock()
	defer keeper.sendMu.RUnlock()

	select {
	case <-stop:
		return
	default:
	}

	for _, event := range events {
		for _, ch := range subscribers {
			if event.Type != EventStateChange {
				select {
				case ch <- event:
				default:
				}
				continue
			}
			select {
			case ch <- event:
			case <-stop:
				return
			}
		}
	}
}
