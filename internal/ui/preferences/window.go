package preferences

import (
	"healthydev/internal/core/model"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window   fyne.Window
	config   model.TimerConfig
	onSave   func(model.TimerConfig) error
	workInt  *widget.Entry
	snooze   *widget.Entry
	breakDur *widget.Entry
}

// New creates a preferences window. onSave receives the edited config; a
// returned error is shown to the user and keeps the window open.
func New(app fyne.App, config model.TimerConfig, onSave func(model.TimerConfig) error) *Window {
	window := app.NewWindow("healthydev Settings")

	prefs := &Window{
		window:   window,
		config:   config,
		onSave:   onSave,
		workInt:  widget.NewEntry(),
		snooze:   widget.NewEntry(),
		breakDur: widget.NewEntry(),
	}
	prefs.UpdateConfig(config)

	form := container.NewVBox(
		widget.NewLabelWithStyle("Timers", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Suggest a break every"), prefs.workInt),
		container.NewHBox(widget.NewLabel("Snooze for"), prefs.snooze),
		container.NewHBox(widget.NewLabel("Break duration"), prefs.breakDur),
		widget.NewLabel("Durations like 25m, 90s or 1h30m."),
	)

	saveButton := widget.NewButton("Save", prefs.handleSave)
	cancelButton := widget.NewButton("Cancel", func() {
		prefs.UpdateConfig(prefs.config)
		window.Hide()
	})
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.SetCloseIntercept(window.Hide)
	window.Resize(fyne.NewSize(380, 240))

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateConfig replaces window values.
func (prefs *Window) UpdateConfig(config model.TimerConfig) {
	prefs.config = config
	values := fieldsFrom(config)
	prefs.workInt.SetText(values.work)
	prefs.snooze.SetText(values.snooze)
	prefs.breakDur.SetText(values.breakDuration)
}

func (prefs *Window) handleSave() {
	values := fields{
		work:          prefs.workInt.Text,
		snooze:        prefs.snooze.Text,
		breakDuration: prefs.breakDur.Text,
	}
	config, err := values.apply(prefs.config)
	if err != nil {
		dialog.ShowError(err, prefs.window)
		return
	}
	if prefs.onSave != nil {
		if err := prefs.onSave(config); err != nil {
			dialog.ShowError(err, prefs.window)
			return
		}
	}
	prefs.config = config
	prefs.window.Hide()
}
