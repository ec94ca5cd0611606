package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"eyeflow/internal/core/motion"
	"eyeflow/internal/ui/preferences"
	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	Speed        string  `yaml:"speed"`
	Pattern      string  `yaml:"pattern"`
	SoundEnabled *bool   `yaml:"sound_enabled"`
	BallSize     float32 `yaml:"ball_size"`
}

// SettingsStore reads and writes preferences in a config directory.
type SettingsStore struct {
	dir string
}

// NewSettingsStore creates a store rooted at dir.
func NewSettingsStore(dir string) *SettingsStore {
	return &SettingsStore{dir: dir}
}

// Path returns the settings file location.
func (store *SettingsStore) Path() string {
	return filepath.Join(store.dir, settingsFileName)
}

// Load reads user preferences from YAML.
// If the file does not exist, default settings are returned.
func (store *SettingsStore) Load() (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(store.Path())
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
	return settings, nil
}

// Save writes user preferences to YAML.
func (store *SettingsStore) Save(settings preferences.Settings) error {
	if err := os.MkdirAll(store.dir, 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	soundEnabled := settings.SoundEnabled
	fileData := yamlSettings{
		Speed:        string(settings.Speed),
		Pattern:      string(settings.Pattern),
		SoundEnabled: &soundEnabled,
		BallSize:     settings.BallSize,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(store.Path(), serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// ApplyEnv overrides preferences from EYEFLOW_SPEED, EYEFLOW_PATTERN and
// EYEFLOW_SOUND. Invalid values are ignored.
func ApplyEnv(settings preferences.Settings) preferences.Settings {
	if value := os.Getenv("EYEFLOW_SPEED"); value != "" {
		if speed, err := motion.ParseSpeed(value); err == nil {
			settings.Speed = speed
		}
	}
	if value := os.Getenv("EYEFLOW_PATTERN"); value != "" {
		if pattern, err := motion.ParsePattern(value); err == nil {
			settings.Pattern = pattern
		}
	}
	if value := os.Getenv("EYEFLOW_SOUND"); value != "" {
		if enabled, err := strconv.ParseBool(value); err == nil {
			settings.SoundEnabled = enabled
		}
	}
	return settings
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	if speed, err := motion.ParseSpeed(fileData.Speed); err == nil {
		settings.Speed = speed
	}
	if pattern, err := motion.ParsePattern(fileData.Pattern); err == nil {
		settings.Pattern = pattern
	}
	if fileData.BallSize >= preferences.MinBallSize && fileData.BallSize <= preferences.MaxBallSize {
		settings.BallSize = fileData.BallSize
	}
	if fileData.SoundEnabled != nil {
		settings.SoundEnabled = *fileData.SoundEnabled
	}
}
