package logging

import "time"

// Console lines show only the time of day. The date is already in the
// chartsmith-YYYYMMDD.log file name, and milliseconds separate the tab,
// upload and save events of a single conversion.
const (
	clockLayout = "15:04:05.000"
	valueLayout = "2006-01-02T15:04:05"
)

func formatClock(ts time.Time) string {
	if ts.IsZero() {
		return "--:--:--.---"
	}
	return ts.Local().Format(clockLayout)
}

// formatTimeValue renders time attributes, which may point at other days
// (history rows, log retention cutoffs), so the date is kept.
func formatTimeValue(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.Local().Format(valueLayout)
}
