package timeutil

import "time"

// Layouts used by the dashboard listings. The kiosk frontend shows a
// zero-padded 12-hour clock, so "03:04 PM" rather than "3:04 PM".
const (
	ClockLayout = "03:04 PM"
	DateLayout  = "2006-01-02"
)

// Now returns the current server-local time. Sessions are recorded in the
// lab server's own clock, same as the sessions table defaults.
func Now() time.Time {
	return time.Now()
}

// FormatClock formats a time as a 12-hour clock string with AM/PM marker.
func FormatClock(t time.Time) string {
	return t.Format(ClockLayout)
}

// FormatDate formats a time as an ISO calendar date.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
