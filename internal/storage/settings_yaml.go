package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"timeapp/internal/platform"
	"timeapp/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	CountdownMinutes *int     `yaml:"countdown_minutes"`
	CountdownSeconds *int     `yaml:"countdown_seconds"`
	PomodoroMinutes  *int     `yaml:"pomodoro_minutes"`
	PomodoroSeconds  *int     `yaml:"pomodoro_seconds"`
	MusicTrack       string   `yaml:"music_track"`
	Volume           *float64 `yaml:"volume"`
}

// LoadSettings reads app preferences from the user config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// SaveSettings writes app preferences to the user config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := ResolveConfigPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// LoadSettingsFile reads preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings.Normalize(), nil
}

// SaveSettingsFile writes preferences to configPath, creating its directory.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	settings = settings.Normalize()
	fileData := yamlSettings{
		CountdownMinutes: &settings.CountdownMinutes,
		CountdownSeconds: &settings.CountdownSeconds,
		PomodoroMinutes:  &settings.PomodoroMinutes,
		PomodoroSeconds:  &settings.PomodoroSeconds,
		MusicTrack:       settings.MusicTrack,
		Volume:           &settings.Volume,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ResolveConfigPath returns where the settings file for appName lives.
func ResolveConfigPath(appName string) (string, error) {
	configDir, err := platform.ConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// SettingsPathIn returns the settings file path inside dir.
func SettingsPathIn(dir string) string {
	return filepath.Join(dir, settingsFileName)
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if fileData.CountdownMinutes != nil {
		settings.CountdownMinutes = *fileData.CountdownMinutes
	}
	if fileData.CountdownSeconds != nil {
		settings.CountdownSeconds = *fileData.CountdownSeconds
	}
	if fileData.PomodoroMinutes != nil {
		settings.PomodoroMinutes = *fileData.PomodoroMinutes
	}
	if fileData.PomodoroSeconds != nil {
		settings.PomodoroSeconds = *fileData.PomodoroSeconds
	}
	if fileData.MusicTrack != "" {
		settings.MusicTrack = fileData.MusicTrack
	}
	if fileData.Volume != nil {
		settings.Volume = *fileData.Volume
	}
}
