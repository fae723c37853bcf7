package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"healthydev/internal/core/model"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "config.yaml"

type yamlSettings struct {
	WorkIntervalMs   int64 `yaml:"work_interval_ms"`
	SnoozeIntervalMs int64 `yaml:"snooze_interval_ms"`
	BreakDurationMs  int64 `yaml:"break_duration_ms"`
}

// DefaultPath returns the settings file location under the user config dir.
func DefaultPath(appName string) (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve user config dir: %w", err)
	}
	return filepath.Join(configDir, appName, settingsFileName), nil
}

// LoadSettings reads the timer config from YAML at path.
// If the file does not exist, default settings are returned.
func LoadSettings(path string) (model.TimerConfig, error) {
	settings := model.DefaultTimerConfig()

	rawData, err := os.ReadFile(path)
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

	if err := applyYamlSettings(&settings, fileData); err != nil {
		return model.DefaultTimerConfig(), fmt.Errorf("parse settings yaml: %w", err)
	}
	return settings, nil
}

// SaveSettings writes the timer config to YAML at path.
func SaveSettings(path string, settings model.TimerConfig) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	serialized, err := EncodeSettings(settings)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// EncodeSettings renders the timer config in the settings file format.
func EncodeSettings(settings model.TimerConfig) ([]byte, error) {
	serialized, err := yaml.Marshal(yamlSettings{
		WorkIntervalMs:   settings.WorkIntervalMs(),
		SnoozeIntervalMs: settings.SnoozeIntervalMs(),
		BreakDurationMs:  settings.BreakDurationMs(),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal settings yaml: %w", err)
	}
	return serialized, nil
}

// Absent or zero values keep the default. Negative values are rejected.
func applyYamlSettings(settings *model.TimerConfig, fileData yamlSettings) error {
	fromFile := model.TimerConfigFromMillis(fileData.WorkIntervalMs, fileData.SnoozeIntervalMs, fileData.BreakDurationMs)
	values := []struct {
		key   string
		value time.Duration
		field *time.Duration
	}{
		{"work_interval_ms", fromFile.WorkInterval, &settings.WorkInterval},
		{"snooze_interval_ms", fromFile.SnoozeInterval, &settings.SnoozeInterval},
		{"break_duration_ms", fromFile.BreakDuration, &settings.BreakDuration},
	}
	for _, value := range values {
		if value.value < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %d", model.ErrInvalidConfig, value.key, value.value.Milliseconds())
		}
		if value.value > 0 {
			*value.field = value.value
		}
	}
	return nil
}
