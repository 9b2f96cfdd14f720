package tray

import (
	"fmt"
	"strings"

	"timeapp/internal/core/model"
	"timeapp/internal/core/timekeeper"
)

// Timer is the read side of a screen's TimeKeeper.
type Timer interface {
	State() model.TimerState
}

// Sound reports whether a screen's player is producing audio.
type Sound interface {
	Playing() bool
}

// Source is one screen as seen from the tray.
type Source struct {
	Name  string
	Timer Timer
	Sound Sound
}

// Summarize builds the tray status from every running timer, and reports
// whether any source is playing audio.
func Summarize(sources []Source) (string, bool) {
	var running []string
	sound := false
	for _, source := range sources {
		if source.Sound != nil && source.Sound.Playing() {
			sound = true
		}
		if source.Timer == nil {
			continue
		}
		state := source.Timer.State()
		if state.Running {
			running = append(running, fmt.Sprintf("%s %s", source.Name, timekeeper.FormatClock(state.Value)))
		}
	}
	if len(running) == 0 {
		return "idle", sound
	}
	return strings.Join(running, ", "), sound
}

// Refresh applies Summarize to the manager.
func (manager *Manager) Refresh(sources []Source) {
	status, sound := Summarize(sources)
	if status != manager.statusLabel {
		manager.statusLabel = status
		manager.refreshStatus()
	}
	manager.SetAlarm(sound)
}
