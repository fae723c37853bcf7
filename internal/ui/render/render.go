// Package render builds the text shown by the status, overlay and prompt
// adapters. It has no UI dependencies.
package render

import (
	"time"

	"healthydev/internal/core/clock"
	"healthydev/internal/core/timekeeper"
)

const (
	PromptTitle   = "Time for a break"
	PromptMessage = "Hey hackerman! you are doing great, take care of yourself, consider taking a short break."
	PromptAccept  = "Take a Break"
	PromptSnooze  = "Later"

	OverlayTitle    = "Pomo Break"
	OverlayHeading  = "Stop Breaking your bones. Take a break!"
	BreakOverText   = "Break Over! Back to Work"
	relaxTextPrefix = "Relax timer : "
)

// StatusLabel is the short status text: elapsed focus time plus a hint for
// states other than plain working.
func StatusLabel(state timekeeper.State, elapsed time.Duration) string {
	label := "⏱ " + clock.Format(elapsed)
	switch state {
	case timekeeper.StateSnoozed:
		return label + " (snoozed)"
	case timekeeper.StatePromptingBreak:
		return label + " (break due)"
	case timekeeper.StateOnBreak, timekeeper.StateBreakOver:
		return label + " (on break)"
	case timekeeper.StateIdle:
		return label + " (stopped)"
	default:
		return label
	}
}

// CountdownText is the single countdown line of the overlay.
func CountdownText(remaining time.Duration, over bool) string {
	if over || remaining <= 0 {
		return BreakOverText
	}
	return relaxTextPrefix + clock.Format(remaining)
}

// BreakMarkup renders the overlay as Markdown.
func BreakMarkup(remaining time.Duration, over bool) string {
	return "# " + OverlayHeading + "\n\n## " + CountdownText(remaining, over) + "\n"
}
