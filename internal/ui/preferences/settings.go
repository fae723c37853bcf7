package preferences

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"healthydev/internal/core/model"
)

// fields holds the form values as the user edits them. Each value is a Go
// duration string such as "10m" or "1m30s"; a bare number uses the field's
// display unit.
type fields struct {
	work          string
	snooze        string
	breakDuration string
}

func fieldsFrom(config model.TimerConfig) fields {
	return fields{
		work:          formatDuration(config.WorkInterval),
		snooze:        formatDuration(config.SnoozeInterval),
		breakDuration: formatDuration(config.BreakDuration),
	}
}

// apply returns base with every valid field applied. Invalid fields are
// reported and leave the base value in place.
func (values fields) apply(base model.TimerConfig) (model.TimerConfig, error) {
	var invalid []string
	if value, ok := parsePositiveDuration(values.work, time.Minute); ok {
		base.WorkInterval = value
	} else {
		invalid = append(invalid, "work interval")
	}
	if value, ok := parsePositiveDuration(values.snooze, time.Minute); ok {
		base.SnoozeInterval = value
	} else {
		invalid = append(invalid, "snooze interval")
	}
	if value, ok := parsePositiveDuration(values.breakDuration, time.Second); ok {
		base.BreakDuration = value
	} else {
		invalid = append(invalid, "break duration")
	}
	if len(invalid) > 0 {
		return base, fmt.Errorf("%w: %s must be a positive duration like 10m or 90s", model.ErrInvalidConfig, strings.Join(invalid, ", "))
	}
	return base, nil
}

// formatDuration drops the zero tails time.Duration.String adds, so 10m0s
// reads as 10m and 1h0m0s as 1h.
func formatDuration(value time.Duration) string {
	text := value.String()
	if strings.HasSuffix(text, "m0s") {
		text = strings.TrimSuffix(text, "0s")
	}
	if strings.HasSuffix(text, "h0m") {
		text = strings.TrimSuffix(text, "0m")
	}
	return text
}

func parsePositiveDuration(value string, unit time.Duration) (time.Duration, bool) {
	value = strings.TrimSpace(value)
	if count, err := strconv.Atoi(value); err == nil {
		if count <= 0 {
			return 0, false
		}
		return time.Duration(count) * unit, true
	}
	parsed, err := time.ParseDuration(value)
	if err != nil || parsed <= 0 {
		return 0, false
	}
	return parsed, true
}
