package storage

import (
	"os"
	"path/filepath"
	"testing"

	"timeapp/internal/audio"
	"timeapp/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "none", settingsFileName))
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveThenLoad(t *testing.T) {
	path := SettingsPathIn(filepath.Join(t.TempDir(), "timeapp"))
	want := preferences.Settings{
		CountdownMinutes: 1,
		CountdownSeconds: 30,
		PomodoroMinutes:  50,
		PomodoroSeconds:  0,
		MusicTrack:       audio.TrackMusic2,
		Volume:           -1.5,
	}
	require.NoError(t, SaveSettingsFile(path, want))

	got, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadPartialAndInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	content := "countdown_minutes: 0\ncountdown_seconds: 0\npomodoro_minutes: 999\nmusic_track: nope\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	settings, err := LoadSettingsFile(path)
	require.NoError(t, err)
	assert.Equal(t, 0, settings.CountdownDuration(), "explicit zero is kept")
	assert.Equal(t, preferences.MaxPomodoroMinutes, settings.PomodoroMinutes)
	assert.Equal(t, audio.TrackMusic1, settings.MusicTrack)
	assert.Equal(t, 0.0, settings.Volume)
}

func TestLoadMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("countdown_minutes: [unclosed"), 0o644))

	settings, err := LoadSettingsFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSaveAndLoadByAppName(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	t.Setenv("HOME", dir)
	t.Setenv("AppData", dir)

	path, err := ResolveConfigPath("timeapp-test")
	require.NoError(t, err)

	settings := preferences.DefaultSettings()
	settings.MusicTrack = audio.TrackMusic3
	require.NoError(t, SaveSettings("timeapp-test", settings))
	assert.FileExists(t, path)

	loaded, err := LoadSettings("timeapp-test")
	require.NoError(t, err)
	assert.Equal(t, audio.TrackMusic3, loaded.MusicTrack)
}
