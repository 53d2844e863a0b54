package domain

import (
	"errors"
	"testing"
	"time"
)

func TestParseBirthDate(t *testing.T) {
	got, err := ParseBirthDate("1995-07-20")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if got.Year() != 1995 || got.Month() != time.July || got.Day() != 20 {
		t.Fatalf("unexpected date: %v", got)
	}
	if s := FormatBirthDate(got); s != "1995-07-20" {
		t.Fatalf("roundtrip: %s", s)
	}
}

func TestParseBirthDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "20.07.1995", "1995-13-01", "2001-02-30"} {
		if _, err := ParseBirthDate(in); !errors.Is(err, ErrInvalidBirthDate) {
			t.Errorf("ParseBirthDate(%q): want ErrInvalidBirthDate, got %v", in, err)
		}
	}
}

func TestMonthDayOf(t *testing.T) {
	d := time.Date(1990, time.May, 2, 0, 0, 0, 0, time.UTC)
	md := MonthDayOf(d)
	if md.String() != "05-02" {
		t.Fatalf("want 05-02, got %s", md.String())
	}
}
