// Package tray shows timer status and quick actions in the desktop system tray.
package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

const menuTitle = "Time"

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPauseAll    func()
	OnSilence     func()
	OnPreferences func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	silenceItem *fyne.MenuItem
	callbacks   Callbacks
	statusLabel string
	alarm       bool
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("", nil)
	manager.statusItem.Disabled = true
	manager.silenceItem = fyne.NewMenuItem("Silence alarm", func() {
		call(manager.callbacks.OnSilence)
	})
	manager.silenceItem.Disabled = true

	manager.refreshStatus()
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.refreshStatus()
}

// Status returns the label currently shown.
func (manager *Manager) Status() string {
	return manager.statusItem.Label
}

// SetAlarm enables the silence action while an alarm or music plays.
func (manager *Manager) SetAlarm(playing bool) {
	if manager.alarm == playing {
		return
	}
	manager.alarm = playing
	manager.silenceItem.Disabled = !playing
	manager.refreshStatus()
}

func (manager *Manager) refreshStatus() {
	status := manager.statusLabel
	if manager.alarm {
		status = fmt.Sprintf("%s (sound on)", status)
	}
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

func (manager *Manager) refreshMenu() {
	if manager.app == nil {
		return
	}
	manager.app.SetSystemTrayMenu(fyne.NewMenu(menuTitle,
		manager.statusItem,
		fyne.NewMenuItem("Show", func() {
			call(manager.callbacks.OnShow)
		}),
		fyne.NewMenuItem("Pause all timers", func() {
			call(manager.callbacks.OnPauseAll)
		}),
		manager.silenceItem,
		fyne.NewMenuItem("Preferences", func() {
			call(manager.callbacks.OnPreferences)
		}),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() {
			call(manager.callbacks.OnQuit)
		}),
	))
}

func call(action func()) {
	if action != nil {
		action()
	}
}
