// Package presenter turns TimeKeeper events into calls on the status, overlay
// and prompt adapters. Adapter failures are logged and never stop the timer.
package presenter

import (
	"context"
	"errors"
	"time"

	"healthydev/internal/core/timekeeper"
	"healthydev/internal/ui/render"

	"github.com/charmbracelet/log"
)

// ErrUnavailable is reported for an adapter that could not be created.
var ErrUnavailable = errors.New("display unavailable")

// StatusView shows the short status label.
type StatusView interface {
	SetStatus(label string) error
}

// BreakAwareStatus is implemented by status views that change while a break runs.
type BreakAwareStatus interface {
	SetInBreak(inBreak bool)
}

// OverlayView shows the break countdown.
type OverlayView interface {
	ShowBreak(markup string) error
	UpdateBreak(markup string) error
	HideBreak() error
}

// PromptView asks whether to take a break and calls answer once with the choice.
type PromptView interface {
	AskBreak(answer func(timekeeper.Choice)) error
}

// Controller receives the user's answer to the break prompt.
type Controller interface {
	Resolve(choice timekeeper.Choice)
}

// Views groups the adapters. A nil view is treated as unavailable.
type Views struct {
	Status  StatusView
	Overlay OverlayView
	Prompt  PromptView
}

// Presenter drives the views from keeper events.
type Presenter struct {
	views      Views
	controller Controller
	logger     *log.Logger
	inBreak    bool
	failing    map[string]bool
}

// New creates a presenter.
func New(views Views, controller Controller, logger *log.Logger) *Presenter {
	return &Presenter{
		views:      views,
		controller: controller,
		logger:     logger,
		failing:    make(map[string]bool),
	}
}

// Run handles events until the channel closes or ctx is done.
func (presenter *Presenter) Run(ctx context.Context, events <-chan timekeeper.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			presenter.Handle(event)
		}
	}
}

// Handle applies a single event to the views.
func (presenter *Presenter) Handle(event timekeeper.Event) {
	switch event.Type {
	case timekeeper.EventWorkTick:
		presenter.setStatus(event.State, event.Elapsed)
	case timekeeper.EventBreakTick:
		presenter.updateBreak(render.BreakMarkup(event.Remaining, false))
	case timekeeper.EventStateChange:
		presenter.handleStateChange(event)
	}
}

func (presenter *Presenter) handleStateChange(event timekeeper.Event) {
	presenter.setStatus(event.State, event.Elapsed)
	if aware, ok := presenter.views.Status.(BreakAwareStatus); ok {
		aware.SetInBreak(event.State.InBreak())
	}

	switch event.State {
	case timekeeper.StatePromptingBreak:
		presenter.askBreak()
	case timekeeper.StateOnBreak:
		presenter.inBreak = true
		presenter.showBreak(render.BreakMarkup(event.Remaining, false))
	case timekeeper.StateBreakOver:
		presenter.updateBreak(render.BreakMarkup(0, true))
	case timekeeper.StateWorking, timekeeper.StateIdle:
		if presenter.inBreak {
			presenter.inBreak = false
			presenter.hideBreak()
		}
	}
}

func (presenter *Presenter) setStatus(state timekeeper.State, elapsed time.Duration) {
	label := render.StatusLabel(state, elapsed)
	if presenter.views.Status == nil {
		presenter.report("status", ErrUnavailable)
		return
	}
	presenter.report("status", presenter.views.Status.SetStatus(label))
}

func (presenter *Presenter) showBreak(markup string) {
	if presenter.views.Overlay == nil {
		presenter.report("overlay", ErrUnavailable)
		return
	}
	presenter.report("overlay", presenter.views.Overlay.ShowBreak(markup))
}

func (presenter *Presenter) updateBreak(markup string) {
	if presenter.views.Overlay == nil {
		presenter.report("overlay", ErrUnavailable)
		return
	}
	presenter.report("overlay", presenter.views.Overlay.UpdateBreak(markup))
}

func (presenter *Presenter) hideBreak() {
	if presenter.views.Overlay == nil {
		return
	}
	presenter.report("overlay", presenter.views.Overlay.HideBreak())
}

// askBreak falls back to a snooze when no prompt can be shown, so the work
// poll resumes and the prompt is retried later. The fallback runs on its own
// goroutine: Resolve delivers a state change that this presenter must read.
func (presenter *Presenter) askBreak() {
	var err error
	if presenter.views.Prompt == nil {
		err = ErrUnavailable
	} else {
		err = presenter.views.Prompt.AskBreak(presenter.controller.Resolve)
	}
	presenter.report("prompt", err)
	if err != nil {
		go presenter.controller.Resolve(timekeeper.ChoiceSnooze)
	}
}

// report logs the first failure of each adapter at warn level and repeats at
// debug level until the adapter succeeds again.
func (presenter *Presenter) report(adapter string, err error) {
	if err == nil {
		if presenter.failing[adapter] {
			presenter.logger.Info("adapter recovered", "adapter", adapter)
			delete(presenter.failing, adapter)
		}
		return
	}
	if presenter.failing[adapter] {
		presenter.logger.Debug("adapter failed", "adapter", adapter, "err", err)
		return
	}
	presenter.failing[adapter] = true
	presenter.logger.Warn("adapter failed", "adapter", adapter, "err", err)
}
