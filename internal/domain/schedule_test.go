package domain

import (
	"testing"
	"time"
)

func TestParseNotifyTime(t *testing.T) {
	cases := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"09:00", 9 * 60, false},
		{"00:00", 0, false},
		{"23:59", 23*60 + 59, false},
		{" 12:30 ", 12*60 + 30, false},
		{"24:00", 0, true},
		{"09:60", 0, true},
		{"0900", 0, true},
		{"", 0, true},
	}
	for _, c := range cases {
		got, err := ParseNotifyTime(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseNotifyTime(%q): expected error, got %d", c.in, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseNotifyTime(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseNotifyTime(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}

func TestNextDailyRun_LaterToday(t *testing.T) {
	now := time.Date(2025, time.May, 5, 7, 30, 0, 0, time.UTC)
	next := NextDailyRun(now, 9*60)
	want := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("want %v, got %v", want, next)
	}
}

func TestNextDailyRun_RollsToTomorrow(t *testing.T) {
	now := time.Date(2025, time.May, 5, 9, 0, 0, 0, time.UTC)
	next := NextDailyRun(now, 9*60)
	want := time.Date(2025, time.May, 6, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("exact slot time must roll over: want %v, got %v", want, next)
	}
}

func TestNextDailyRun_MonthBoundary(t *testing.T) {
	now := time.Date(2025, time.May, 31, 22, 0, 0, 0, time.UTC)
	next := NextDailyRun(now, 9*60)
	want := time.Date(2025, time.June, 1, 9, 0, 0, 0, time.UTC)
	if !next.Equal(want) {
		t.Fatalf("want %v, got %v", want, next)
	}
}
