// Package overlay renders the break countdown in its own window.
package overlay

import (
	"sync"

	"healthydev/internal/ui/render"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
)

// Config defines overlay visuals.
type Config struct {
	Fullscreen bool
}

// Window manages the overlay UI.
type Window struct {
	mu         sync.Mutex
	window     fyne.Window
	config     Config
	content    *widget.RichText
	backButton *widget.Button
	onClose    func()
}

const (
	overlayWidthFraction  = float32(0.4)
	overlayHeightFraction = float32(0.35)
	defaultScreenWidth    = float32(1920)
	defaultScreenHeight   = float32(1080)
)

// New creates the overlay window. It stays hidden until ShowBreak.
func New(app fyne.App, config Config) *Window {
	window := app.NewWindow(render.OverlayTitle)
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	content := widget.NewRichTextFromMarkdown(render.BreakMarkup(0, false))
	backButton := widget.NewButton("Back to work", nil)
	window.SetContent(container.NewCenter(container.NewVBox(content, backButton)))

	overlay := &Window{
		window:     window,
		config:     config,
		content:    content,
		backButton: backButton,
	}
	backButton.OnTapped = overlay.close
	window.SetCloseIntercept(overlay.close)
	return overlay
}

// SetOnClose sets the handler run when the user dismisses the overlay.
func (overlay *Window) SetOnClose(handler func()) {
	overlay.mu.Lock()
	overlay.onClose = handler
	overlay.mu.Unlock()
}

// ShowBreak renders markup and raises the window.
func (overlay *Window) ShowBreak(markup string) error {
	fyne.Do(func() {
		overlay.content.ParseMarkdown(markup)
		overlay.applyWindowMode()
		overlay.window.Show()
		overlay.window.RequestFocus()
	})
	return nil
}

// UpdateBreak re-renders markup in place.
func (overlay *Window) UpdateBreak(markup string) error {
	fyne.Do(func() {
		overlay.content.ParseMarkdown(markup)
	})
	return nil
}

// HideBreak hides the window without notifying the close handler.
func (overlay *Window) HideBreak() error {
	fyne.Do(overlay.hide)
	return nil
}

func (overlay *Window) close() {
	overlay.hide()
	overlay.mu.Lock()
	handler := overlay.onClose
	overlay.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func (overlay *Window) hide() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(false)
	}
	overlay.window.Hide()
}

func (overlay *Window) applyWindowMode() {
	if overlay.config.Fullscreen {
		overlay.window.SetFullScreen(true)
		return
	}
	overlay.window.SetFullScreen(false)
	overlay.resizeToScreenFraction()
}

func (overlay *Window) resizeToScreenFraction() {
	screenSize := fyne.NewSize(defaultScreenWidth, defaultScreenHeight)
	canvasSize := overlay.window.Canvas().Size()
	// Canvas size can be reused as a proxy for monitor size when it is clearly screen-like.
	if canvasSize.Width >= 1024 && canvasSize.Height >= 720 {
		screenSize = canvasSize
	}

	width := screenSize.Width * overlayWidthFraction
	height := screenSize.Height * overlayHeightFraction
	minSize := overlay.window.Content().MinSize()
	if width < minSize.Width {
		width = minSize.Width
	}
	if height < minSize.Height {
		height = minSize.Height
	}

	overlay.window.Resize(fyne.NewSize(width, height))
	overlay.window.CenterOnScreen()
}
