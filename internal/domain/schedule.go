package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseNotifyTime parses "HH:MM" into minutes since midnight (0..1439).
// Used for the daily check time supplied via configuration.
func ParseNotifyTime(s string) (int, error) {
	s = strings.TrimSpace(s)
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, errors.New("expected HH:MM")
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, errors.New("invalid hour")
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, errors.New("invalid minute")
	}
	return h*60 + m, nil
}

// FormatMinutes returns HH:MM for minutes since midnight (00:00..23:59).
func FormatMinutes(mins int) string {
	if mins < 0 {
		mins = 0
	}
	return fmt.Sprintf("%02d:%02d", mins/60, mins%60)
}

// NextDailyRun returns the next occurrence of the given wall-clock minute
// strictly after now, in now's location. If today's slot has already passed
// (or is exactly now), the run rolls over to tomorrow. Windows missed while
// the process was down are not backfilled.
func NextDailyRun(now time.Time, atM int) time.Time {
	h := atM / 60
	m := atM % 60
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}
