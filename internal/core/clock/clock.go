package clock

import (
	"fmt"
	"time"
)

// Clock abstracts the current time so timers can be driven in tests.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// System is the wall clock.
var System Clock = systemClock{}

// Format renders a duration as zero-padded HH:MM:SS. Negative values clamp to zero
// and hours are not wrapped at 24.
func Format(value time.Duration) string {
	if value < 0 {
		value = 0
	}
	totalSeconds := int64(value / time.Second)
	hours := totalSeconds / 3600
	minutes := (totalSeconds / 60) % 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
}

// FormatMillis is Format for a millisecond count.
func FormatMillis(millis int64) string {
	return Format(time.Duration(millis) * time.Millisecond)
}
