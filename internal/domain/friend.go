package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

const birthDateLayout = "2006-01-02"

var ErrInvalidBirthDate = errors.New("invalid birth date")

// Friend is one registered birthday record.
type Friend struct {
	ID       int64
	OwnerID  int64 // chat that registered this friend
	Name     string
	Birthday time.Time // date-only; the year is stored but ignored for matching
}

// MonthDay is the year-independent projection of a calendar date.
type MonthDay struct {
	Month time.Month
	Day   int
}

// MonthDayOf projects t onto its month-day pair.
func MonthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// String renders the MM-DD form used as the storage match key.
func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// ParseBirthDate validates user input in YYYY-MM-DD form.
// time.Parse rejects calendar-impossible dates like 2001-02-30.
func ParseBirthDate(s string) (time.Time, error) {
	t, err := time.Parse(birthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidBirthDate, s)
	}
	return t, nil
}

// FormatBirthDate renders t in the stored YYYY-MM-DD form.
func FormatBirthDate(t time.Time) string {
	return t.Format(birthDateLayout)
}
