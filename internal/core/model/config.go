package model

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfig is returned when a TimerConfig holds a non-positive duration.
var ErrInvalidConfig = errors.New("invalid timer config")

const (
	DefaultWorkInterval   = 10 * time.Minute
	DefaultSnoozeInterval = 5 * time.Minute
	DefaultBreakDuration  = 10 * time.Second
)

// TimerConfig contains runtime settings for the TimeKeeper state machine.
type TimerConfig struct {
	WorkInterval   time.Duration
	SnoozeInterval time.Duration
	BreakDuration  time.Duration
}

// DefaultTimerConfig returns the built-in work, snooze and break durations.
func DefaultTimerConfig() TimerConfig {
	return TimerConfig{
		WorkInterval:   DefaultWorkInterval,
		SnoozeInterval: DefaultSnoozeInterval,
		BreakDuration:  DefaultBreakDuration,
	}
}

// TimerConfigFromMillis builds a config from millisecond values.
func TimerConfigFromMillis(workIntervalMs, snoozeIntervalMs, breakDurationMs int64) TimerConfig {
	return TimerConfig{
		WorkInterval:   time.Duration(workIntervalMs) * time.Millisecond,
		SnoozeInterval: time.Duration(snoozeIntervalMs) * time.Millisecond,
		BreakDuration:  time.Duration(breakDurationMs) * time.Millisecond,
	}
}

func (config TimerConfig) WorkIntervalMs() int64   { return config.WorkInterval.Milliseconds() }
func (config TimerConfig) SnoozeIntervalMs() int64 { return config.SnoozeInterval.Milliseconds() }
func (config TimerConfig) BreakDurationMs() int64  { return config.BreakDuration.Milliseconds() }

// WithDefaults fills zero fields from DefaultTimerConfig.
func (config TimerConfig) WithDefaults() TimerConfig {
	defaults := DefaultTimerConfig()
	if config.WorkInterval == 0 {
		config.WorkInterval = defaults.WorkInterval
	}
	if config.SnoozeInterval == 0 {
		config.SnoozeInterval = defaults.SnoozeInterval
	}
	if config.BreakDuration == 0 {
		config.BreakDuration = defaults.BreakDuration
	}
	return config
}

// Validate reports the first non-positive duration.
func (config TimerConfig) Validate() error {
	if config.WorkInterval <= 0 {
		return fmt.Errorf("%w: work interval must be positive, got %s", ErrInvalidConfig, config.WorkInterval)
	}
	if config.SnoozeInterval <= 0 {
		return fmt.Errorf("%w: snooze interval must be positive, got %s", ErrInvalidConfig, config.SnoozeInterval)
	}
	if config.BreakDuration <= 0 {
		return fmt.Errorf("%w: break duration must be positive, got %s", ErrInvalidConfig, config.BreakDuration)
	}
	return nil
}
