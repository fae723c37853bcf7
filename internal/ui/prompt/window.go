// Package prompt asks the user whether to take a break now or later.
package prompt

import (
	"sync"

	"healthydev/internal/core/timekeeper"
	"healthydev/internal/ui/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window is a small dialog window with the two choices. Closing it counts as
// "Later".
type Window struct {
	mu     sync.Mutex
	app    fyne.App
	window fyne.Window
	answer func(timekeeper.Choice)
}

// New creates the prompt window. It stays hidden until AskBreak.
func New(app fyne.App) *Window {
	prompt := &Window{
		app:    app,
		window: app.NewWindow(render.PromptTitle),
	}

	message := widget.NewLabel(render.PromptMessage)
	message.Wrapping = fyne.TextWrapWord

	accept := widget.NewButton(render.PromptAccept, func() {
		prompt.choose(timekeeper.ChoiceTakeBreak)
	})
	accept.Importance = widget.HighImportance
	later := widget.NewButton(render.PromptSnooze, func() {
		prompt.choose(timekeeper.ChoiceSnooze)
	})

	buttons := container.NewHBox(layout.NewSpacer(), later, accept)
	prompt.window.SetContent(container.NewBorder(nil, buttons, nil, nil, message))
	prompt.window.SetCloseIntercept(func() {
		prompt.choose(timekeeper.ChoiceSnooze)
	})
	prompt.window.Resize(fyne.NewSize(440, 160))
	return prompt
}

// AskBreak sends a desktop notification and shows the window. answer runs
// once, on the UI goroutine.
func (prompt *Window) AskBreak(answer func(timekeeper.Choice)) error {
	prompt.mu.Lock()
	prompt.answer = answer
	prompt.mu.Unlock()

	prompt.app.SendNotification(fyne.NewNotification(render.PromptTitle, render.PromptMessage))
	fyne.Do(func() {
		prompt.window.CenterOnScreen()
		prompt.window.Show()
		prompt.window.RequestFocus()
	})
	return nil
}

func (prompt *Window) choose(choice timekeeper.Choice) {
	prompt.window.Hide()

	prompt.mu.Lock()
	answer := prompt.answer
	prompt.answer = nil
	prompt.mu.Unlock()

	if answer != nil {
		answer(choice)
	}
}
