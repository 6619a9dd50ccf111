package services

import "time"

const dayKeyLayout = "2006-01-02"

func locationOrUTC(location *time.Location) *time.Location {
	if location == nil {
		return time.UTC
	}
	return location
}

// DateAtLocation truncates a timestamp to its local calendar day. Two
// timestamps on the same local day map to the same value regardless of hour.
func DateAtLocation(value time.Time, location *time.Location) time.Time {
	location = locationOrUTC(location)
	localized := value.In(location)
	year, month, day := localized.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, location)
}

// DayRange returns the half-open [start, end) interval covering the local
// calendar day of value.
func DayRange(value time.Time, location *time.Location) (time.Time, time.Time) {
	start := DateAtLocation(value, location)
	return start, start.AddDate(0, 0, 1)
}

// DayKey formats the local calendar day of value as YYYY-MM-DD.
func DayKey(value time.Time, location *time.Location) string {
	return DateAtLocation(value, location).Format(dayKeyLayout)
}

// DaysBetween returns the signed whole-day difference b - a. The calendar
// components are re-anchored at UTC midnight so a DST transition between the
// two days can never skew the count.
func DaysBetween(a time.Time, b time.Time) int {
	aYear, aMonth, aDay := a.Date()
	bYear, bMonth, bDay := b.Date()
	first := time.Date(aYear, aMonth, aDay, 0, 0, 0, 0, time.UTC)
	second := time.Date(bYear, bMonth, bDay, 0, 0, 0, 0, time.UTC)
	return int(second.Sub(first).Hours() / 24)
}
