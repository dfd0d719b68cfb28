package entity

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidTimeOfDay is returned when a clock string is not HH:MM.
var ErrInvalidTimeOfDay = errors.New("invalid time of day, use HH:MM")

// MinuteOfDay parses a clock string into minutes since midnight. Accepts
// HH:MM from API requests and HH:MM:SS, which Postgres TIME columns scan
// back into the entity string fields.
func MinuteOfDay(clock string) (int, error) {
	t, err := time.Parse("15:04", clock)
	if err != nil {
		t, err = time.Parse("15:04:05", clock)
		if err != nil {
			return 0, ErrInvalidTimeOfDay
		}
	}
	return t.Hour()*60 + t.Minute(), nil
}

// FormatMinuteOfDay renders minutes since midnight as an HH:MM clock string.
func FormatMinuteOfDay(minute int) string {
	return fmt.Sprintf("%02d:%02d", minute/60, minute%60)
}
