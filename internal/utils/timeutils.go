package utils

import (
	"fmt"
	"time"
)

// ParseRFC3339 returns a time from the provided string or an error.
func ParseRFC3339(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("empty time value")
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time: %w", err)
	}
	return t, nil
}

// TrendWindows splits the trailing 2×window span ending at now into the
// current window [now-window, now) and the previous window
// [now-2×window, now-window).
func TrendWindows(now time.Time, window time.Duration) (currentStart, previousStart, previousEnd time.Time) {
	currentStart = now.Add(-window)
	previousEnd = currentStart
	previousStart = currentStart.Add(-window)
	return currentStart, previousStart, previousEnd
}
