package preferences

import (
	"errors"
	"strings"
	"testing"
	"time"

	"healthydev/internal/core/model"
)

func TestFieldsFromDefaults(t *testing.T) {
	values := fieldsFrom(model.DefaultTimerConfig())
	if values.work != "10m" || values.snooze != "5m" || values.breakDuration != "10s" {
		t.Fatalf("fieldsFrom() = %+v", values)
	}
}

func TestFieldsApply(t *testing.T) {
	config, err := fields{work: "25m", snooze: " 3 ", breakDuration: "45"}.apply(model.DefaultTimerConfig())
	if err != nil {
		t.Fatalf("apply() error = %v", err)
	}
	want := model.TimerConfig{WorkInterval: 25 * time.Minute, SnoozeInterval: 3 * time.Minute, BreakDuration: 45 * time.Second}
	if config != want {
		t.Fatalf("apply() = %+v, want %+v", config, want)
	}
}

func TestFieldsKeepSubUnitValues(t *testing.T) {
	tests := []struct {
		name   string
		config model.TimerConfig
	}{
		{"seconds in minute fields", model.TimerConfig{WorkInterval: 90 * time.Second, SnoozeInterval: 30 * time.Second, BreakDuration: 1500 * time.Millisecond}},
		{"hours", model.TimerConfig{WorkInterval: 2 * time.Hour, SnoozeInterval: time.Hour + 30*time.Minute, BreakDuration: 5 * time.Minute}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fieldsFrom(tt.config).apply(model.DefaultTimerConfig())
			if err != nil {
				t.Fatalf("apply() error = %v", err)
			}
			if got != tt.config {
				t.Fatalf("apply() = %+v, want %+v", got, tt.config)
			}
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		10 * time.Minute:        "10m",
		90 * time.Second:        "1m30s",
		time.Hour:               "1h",
		1500 * time.Millisecond: "1.5s",
	}
	for value, want := range tests {
		if got := formatDuration(value); got != want {
			t.Errorf("formatDuration(%v) = %q, want %q", value, got, want)
		}
	}
}

func TestFieldsApplyReportsInvalid(t *testing.T) {
	base := model.DefaultTimerConfig()
	config, err := fields{work: "0", snooze: "abc", breakDuration: "20s"}.apply(base)
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("apply() error = %v, want ErrInvalidConfig", err)
	}
	if !strings.Contains(err.Error(), "work interval, snooze interval") {
		t.Fatalf("apply() error = %q, want both fields named", err)
	}
	if config.WorkInterval != base.WorkInterval || config.BreakDuration != 20*time.Second {
		t.Fatalf("apply() = %+v", config)
	}
}

func TestFieldsApplyRejectsNegative(t *testing.T) {
	_, err := fields{work: "-5m", snooze: "5m", breakDuration: "10s"}.apply(model.DefaultTimerConfig())
	if !errors.Is(err, model.ErrInvalidConfig) {
		t.Fatalf("apply() error = %v, want ErrInvalidConfig", err)
	}
}
