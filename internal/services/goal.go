package services

import (
	"strings"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
)

// Goal windows are half-open local-time intervals in minutes of the day.
type goalWindow struct {
	startMinute int
	endMinute   int
}

var goalWindows = map[string]goalWindow{
	models.GoalEarly: {startMinute: 6 * 60, endMinute: 8 * 60},
	models.GoalMid:   {startMinute: 8 * 60, endMinute: 10 * 60},
	models.GoalLate:  {startMinute: 10 * 60, endMinute: 12 * 60},
}

// Verifications before 8 AM local time earn the early-bird badge regardless
// of the selected goal window.
const earlyBirdMinute = 8 * 60

type GoalTimeStatus struct {
	IsWithinGoal bool
	IsEarly      bool
}

// NormalizeGoal maps a raw stored goal value onto a supported selection.
// "morning" is a legacy alias for early; anything unrecognized falls back to
// the early default instead of failing.
func NormalizeGoal(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "morning" {
		return models.GoalEarly
	}
	if _, known := goalWindows[value]; known {
		return value
	}
	return models.DefaultGoal
}

func IsValidGoal(raw string) bool {
	_, known := goalWindows[strings.ToLower(strings.TrimSpace(raw))]
	return known
}

// ClassifyGoalTime reports whether madeAt lands inside the goal's [start, end)
// window or before it. A timestamp exactly at start is within the goal; a
// timestamp exactly at end is neither within nor early.
func ClassifyGoalTime(madeAt time.Time, goal string, location *time.Location) GoalTimeStatus {
	window := goalWindows[NormalizeGoal(goal)]
	minute := minuteOfDay(madeAt, location)
	return GoalTimeStatus{
		IsWithinGoal: minute >= window.startMinute && minute < window.endMinute,
		IsEarly:      minute < window.startMinute,
	}
}

func IsEarlyBird(madeAt time.Time, location *time.Location) bool {
	return minuteOfDay(madeAt, location) < earlyBirdMinute
}

// IsPastGoalWindow reports whether now is at or past the end of the goal
// window, i.e. a verification from here on counts as late.
func IsPastGoalWindow(now time.Time, goal string, location *time.Location) bool {
	window := goalWindows[NormalizeGoal(goal)]
	return minuteOfDay(now, location) >= window.endMinute
}

// GoalWindowBounds exposes the window's start and end as hours, for callers
// that schedule around the window rather than classify against it.
func GoalWindowBounds(goal string) (startHour int, endHour int) {
	window := goalWindows[NormalizeGoal(goal)]
	return window.startMinute / 60, window.endMinute / 60
}

func minuteOfDay(value time.Time, location *time.Location) int {
	localized := value.In(locationOrUTC(location))
	return localized.Hour()*60 + localized.Minute()
}
