package timeutil

import (
	"testing"
	"time"
)

func TestFormatClock_ZeroPadsTwelveHourClock(t *testing.T) {
	cases := []struct {
		in   time.Time
		want string
	}{
		{time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), "12:00 AM"},
		{time.Date(2026, 3, 9, 9, 5, 0, 0, time.UTC), "09:05 AM"},
		{time.Date(2026, 3, 9, 12, 0, 0, 0, time.UTC), "12:00 PM"},
		{time.Date(2026, 3, 9, 15, 45, 0, 0, time.UTC), "03:45 PM"},
	}

	for _, c := range cases {
		if got := FormatClock(c.in); got != c.want {
			t.Errorf("FormatClock(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatDate_ISODate(t *testing.T) {
	in := time.Date(2026, 3, 9, 15, 45, 0, 0, time.UTC)
	if got := FormatDate(in); got != "2026-03-09" {
		t.Errorf("FormatDate = %q, want 2026-03-09", got)
	}
}
