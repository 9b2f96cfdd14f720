package preferences

import (
	"slices"

	"timeapp/internal/audio"
	"timeapp/internal/core/model"
)

// Selector bounds for the Pomodoro duration wheels.
const (
	MaxPomodoroMinutes = 120
	MaxSeconds         = 59

	MinVolume = -4.0
	MaxVolume = 2.0
)

// Settings defines editable app preferences. Profile data is not part of it.
type Settings struct {
	CountdownMinutes int
	CountdownSeconds int
	PomodoroMinutes  int
	PomodoroSeconds  int
	MusicTrack       string
	Volume           float64
}

// DefaultSettings returns default settings for the app.
func DefaultSettings() Settings {
	return Settings{
		CountdownMinutes: 25,
		CountdownSeconds: 0,
		PomodoroMinutes:  25,
		PomodoroSeconds:  0,
		MusicTrack:       audio.TrackMusic1,
		Volume:           0,
	}
}

// Normalize clamps every field into its valid range.
func (settings Settings) Normalize() Settings {
	defaults := DefaultSettings()
	settings.CountdownMinutes = clamp(settings.CountdownMinutes, 0, 999)
	settings.CountdownSeconds = clamp(settings.CountdownSeconds, 0, MaxSeconds)
	settings.PomodoroMinutes = clamp(settings.PomodoroMinutes, 0, MaxPomodoroMinutes)
	settings.PomodoroSeconds = clamp(settings.PomodoroSeconds, 0, MaxSeconds)
	if !slices.Contains(audio.MusicTracks, settings.MusicTrack) {
		settings.MusicTrack = defaults.MusicTrack
	}
	if settings.Volume < MinVolume {
		settings.Volume = MinVolume
	}
	if settings.Volume > MaxVolume {
		settings.Volume = MaxVolume
	}
	return settings
}

// CountdownDuration returns the default countdown length in seconds.
func (settings Settings) CountdownDuration() int {
	return model.DurationSeconds(settings.CountdownMinutes, settings.CountdownSeconds)
}

// PomodoroDuration returns the default Pomodoro length in seconds.
func (settings Settings) PomodoroDuration() int {
	return model.DurationSeconds(settings.PomodoroMinutes, settings.PomodoroSeconds)
}

func clamp(value, low, high int) int {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
