package quota

import "time"

// Quota windows are UTC-aligned. The week runs Monday 00:00 through the
// following Sunday 23:59:59, so a Sunday reference maps to the previous
// Monday.

// StartOfDay returns UTC midnight of the day containing t.
func StartOfDay(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// StartOfWeek returns UTC Monday midnight of the week containing t.
func StartOfWeek(t time.Time) time.Time {
	day := StartOfDay(t)
	// time.Weekday numbers Sunday as 0.
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}

// StartOfYear returns UTC January 1st midnight of the year containing t.
func StartOfYear(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
}
