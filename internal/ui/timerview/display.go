// Package timerview holds the widgets and event plumbing shared by the
// countdown, timer and Pomodoro screens.
package timerview

import (
	"image/color"

	"timeapp/internal/core/timekeeper"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const displayTextSize = 64

// Display renders a timer value as a large MM:SS readout.
type Display struct {
	text *canvas.Text
}

// NewDisplay creates a display showing 00:00.
func NewDisplay() *Display {
	text := canvas.NewText(timekeeper.FormatClock(0), theme.Color(theme.ColorNameForeground))
	text.TextSize = displayTextSize
	text.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	text.Alignment = fyne.TextAlignCenter
	return &Display{text: text}
}

// Set shows seconds.
func (display *Display) Set(seconds int) {
	display.text.Text = timekeeper.FormatClock(seconds)
	display.text.Refresh()
}

// SetVisible hides the digits without changing layout; used for blinking.
func (display *Display) SetVisible(visible bool) {
	if visible {
		display.text.Color = theme.Color(theme.ColorNameForeground)
	} else {
		display.text.Color = color.Transparent
	}
	display.text.Refresh()
}

// Text returns the rendered value.
func (display *Display) Text() string {
	return display.text.Text
}

// Object returns the canvas object to place in a layout.
func (display *Display) Object() fyne.CanvasObject {
	return display.text
}

// Title builds the heading shown above each timer.
func Title(text string) *widget.Label {
	return widget.NewLabelWithStyle(text, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
}

// SetToggle switches a start/pause button between its two faces.
func SetToggle(button *widget.Button, running bool) {
	if running {
		button.SetText("Pause")
		button.SetIcon(theme.MediaPauseIcon())
		button.Importance = widget.DangerImportance
	} else {
		button.SetText("Start")
		button.SetIcon(theme.MediaPlayIcon())
		button.Importance = widget.SuccessImportance
	}
	button.Refresh()
}
