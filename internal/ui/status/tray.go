// Package status shows the focus timer label in the system tray menu.
package status

import (
	"errors"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
)

// ErrTrayUnsupported is returned when the driver has no system tray.
var ErrTrayUnsupported = errors.New("system tray unsupported")

const menuTitle = "healthydev"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnStartBreak  func()
	OnPreferences func()
	OnQuit        func()
}

// Tray handles system tray state.
type Tray struct {
	mu         sync.Mutex
	app        desktop.App
	statusItem *fyne.MenuItem
	breakItem  *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
	callbacks  Callbacks
}

// New installs the tray menu on app.
func New(app fyne.App, callbacks Callbacks) (*Tray, error) {
	desktopApp, ok := app.(desktop.App)
	if !ok {
		return nil, ErrTrayUnsupported
	}

	tray := &Tray{
		app:       desktopApp,
		callbacks: callbacks,
	}

	tray.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	tray.statusItem.Disabled = true

	tray.breakItem = fyne.NewMenuItem("Take a break now", func() {
		if tray.callbacks.OnStartBreak != nil {
			tray.callbacks.OnStartBreak()
		}
	})
	tray.prefsItem = fyne.NewMenuItem("Preferences", func() {
		if tray.callbacks.OnPreferences != nil {
			tray.callbacks.OnPreferences()
		}
	})
	tray.quitItem = fyne.NewMenuItem("Quit", func() {
		if tray.callbacks.OnQuit != nil {
			tray.callbacks.OnQuit()
		}
	})
	tray.quitItem.IsQuit = true

	desktopApp.SetSystemTrayIcon(theme.HistoryIcon())
	tray.refreshMenu()
	return tray, nil
}

// SetStatus updates the status label.
func (tray *Tray) SetStatus(label string) error {
	fyne.Do(func() {
		tray.mu.Lock()
		defer tray.mu.Unlock()
		tray.statusItem.Label = "Status: " + label
		tray.refreshMenu()
	})
	return nil
}

// SetInBreak disables "Take a break now" while a break runs.
func (tray *Tray) SetInBreak(inBreak bool) {
	fyne.Do(func() {
		tray.mu.Lock()
		defer tray.mu.Unlock()
		tray.breakItem.Disabled = inBreak
		tray.refreshMenu()
	})
}

func (tray *Tray) refreshMenu() {
	tray.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		tray.statusItem,
		tray.breakItem,
		tray.prefsItem,
		tray.quitItem,
	))
}
