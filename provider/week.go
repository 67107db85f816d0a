package provider

import "time"

// WeekProgress is the elapsed share of the week in percent, weeks start on Monday.
func WeekProgress(now time.Time) int {
	weekday := (int(now.Weekday()) + 6) % 7
	hours := weekday*24 + now.Hour()
	return int(float64(hours) / (7 * 24) * 100)
}
