package preferences

import (
	"fmt"
	"strconv"
	"strings"

	"timeapp/internal/audio"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences form. It is shown as a dialog so it works
// on mobile, where an app only has one window.
type Window struct {
	parent       fyne.Window
	settings     Settings
	onSave       func(Settings)
	countdownMin *widget.Entry
	countdownSec *widget.Entry
	pomodoroMin  *widget.Entry
	pomodoroSec  *widget.Entry
	track        *widget.Select
	volume       *widget.Slider
	form         fyne.CanvasObject
}

// New creates a preferences form bound to parent.
func New(parent fyne.Window, settings Settings, onSave func(Settings)) *Window {
	countdownMin := widget.NewEntry()
	countdownSec := widget.NewEntry()
	pomodoroMin := widget.NewEntry()
	pomodoroSec := widget.NewEntry()

	track := widget.NewSelect(audio.MusicTracks, nil)

	volume := widget.NewSlider(MinVolume, MaxVolume)
	volume.Step = 0.5

	form := container.NewVBox(
		widget.NewLabelWithStyle("Countdown", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(countdownMin, widget.NewLabel("min"), countdownSec, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Pomodoro", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(pomodoroMin, widget.NewLabel("min"), pomodoroSec, widget.NewLabel("sec")),
		widget.NewLabelWithStyle("Background music", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		track,
		widget.NewLabel("Volume"),
		volume,
	)

	prefs := &Window{
		parent:       parent,
		onSave:       onSave,
		countdownMin: countdownMin,
		countdownSec: countdownSec,
		pomodoroMin:  pomodoroMin,
		pomodoroSec:  pomodoroSec,
		track:        track,
		volume:       volume,
		form:         form,
	}
	prefs.UpdateSettings(settings)
	return prefs
}

// Show displays the preferences dialog.
func (prefs *Window) Show() {
	prefs.UpdateSettings(prefs.settings)
	dialog.ShowCustomConfirm("Preferences", "Save", "Cancel", prefs.form, func(save bool) {
		if save {
			prefs.handleSave()
		}
	}, prefs.parent)
}

// Content returns the form, for embedding or tests.
func (prefs *Window) Content() fyne.CanvasObject {
	return prefs.form
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.countdownMin.SetText(strconv.Itoa(settings.CountdownMinutes))
	prefs.countdownSec.SetText(fmt.Sprintf("%02d", settings.CountdownSeconds))
	prefs.pomodoroMin.SetText(strconv.Itoa(settings.PomodoroMinutes))
	prefs.pomodoroSec.SetText(fmt.Sprintf("%02d", settings.PomodoroSeconds))
	prefs.track.SetSelected(settings.MusicTrack)
	prefs.volume.SetValue(settings.Volume)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings

	if minutes, ok := parseNonNegativeInt(prefs.countdownMin.Text); ok {
		settings.CountdownMinutes = minutes
	}
	if seconds, ok := parseNonNegativeInt(prefs.countdownSec.Text); ok {
		settings.CountdownSeconds = seconds
	}
	if minutes, ok := parseNonNegativeInt(prefs.pomodoroMin.Text); ok {
		settings.PomodoroMinutes = minutes
	}
	if seconds, ok := parseNonNegativeInt(prefs.pomodoroSec.Text); ok {
		settings.PomodoroSeconds = seconds
	}
	if prefs.track.Selected != "" {
		settings.MusicTrack = prefs.track.Selected
	}
	settings.Volume = prefs.volume.Value

	settings = settings.Normalize()
	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
}

func parseNonNegativeInt(value string) (int, bool) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil || parsed < 0 {
		return 0, false
	}
	return parsed, true
}
