package utils

import "time"

// StartOfDay truncates t to local midnight. Dashboard "today" windows are
// anchored here.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// StartOfWeek returns the midnight seven days before t.
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -7)
}
