package domain

import "time"

const secondsPerDay = 24 * 60 * 60

// DateOnly truncates t to midnight UTC of its calendar date
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// CalendarDays returns end - start in whole calendar days, ignoring time of day.
// The result is negative when end is before start.
// Counted on Unix seconds: time.Duration saturates after ~292 years.
func CalendarDays(start, end time.Time) int {
	return int((DateOnly(end).Unix() - DateOnly(start).Unix()) / secondsPerDay)
}
