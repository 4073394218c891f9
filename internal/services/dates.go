package services

import "time"

// dayStart strips the time of day in loc. All "is it expired yet" checks
// compare day-truncated values so records stay valid through the whole of
// their final calendar day in the deployment's reference time zone.
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// daysRemaining returns the number of days from now until due, rounded up.
func daysRemaining(now, due time.Time) int {
	diff := due.Sub(now)
	if diff <= 0 {
		return 0
	}
	days := int(diff / (24 * time.Hour))
	if diff%(24*time.Hour) > 0 {
		days++
	}
	return days
}
