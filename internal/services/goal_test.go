package services

import (
	"testing"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
)

func TestNormalizeGoal(t *testing.T) {
	cases := []struct {
		raw      string
		expected string
	}{
		{raw: "early", expected: models.GoalEarly},
		{raw: "mid", expected: models.GoalMid},
		{raw: "late", expected: models.GoalLate},
		{raw: " Late ", expected: models.GoalLate},
		{raw: "morning", expected: models.GoalEarly},
		{raw: "MORNING", expected: models.GoalEarly},
		{raw: "", expected: models.GoalEarly},
		{raw: "afternoon", expected: models.GoalEarly},
	}

	for _, tc := range cases {
		if got := NormalizeGoal(tc.raw); got != tc.expected {
			t.Fatalf("NormalizeGoal(%q) = %q, expected %q", tc.raw, got, tc.expected)
		}
	}
}

func TestClassifyGoalTimeBoundaries(t *testing.T) {
	// Mid window is [08:00, 10:00). Exactly 08:00 counts, exactly 10:00
	// does not.
	atStart := atClock(8, 0)
	if status := ClassifyGoalTime(atStart, models.GoalMid, time.UTC); !status.IsWithinGoal || status.IsEarly {
		t.Fatalf("expected within goal at window start, got %+v", status)
	}

	atEnd := atClock(10, 0)
	if status := ClassifyGoalTime(atEnd, models.GoalMid, time.UTC); status.IsWithinGoal || status.IsEarly {
		t.Fatalf("expected late at window end, got %+v", status)
	}

	justBeforeEnd := atClock(9, 59)
	if status := ClassifyGoalTime(justBeforeEnd, models.GoalMid, time.UTC); !status.IsWithinGoal {
		t.Fatalf("expected within goal just before window end, got %+v", status)
	}
}

func TestClassifyGoalTimeScenarios(t *testing.T) {
	cases := []struct {
		name       string
		hour       int
		withinGoal bool
		early      bool
	}{
		{name: "nine is within mid goal", hour: 9, withinGoal: true, early: false},
		{name: "eleven misses mid goal", hour: 11, withinGoal: false, early: false},
		{name: "seven is early for mid goal", hour: 7, withinGoal: false, early: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status := ClassifyGoalTime(atClock(tc.hour, 0), models.GoalMid, time.UTC)
			if status.IsWithinGoal != tc.withinGoal || status.IsEarly != tc.early {
				t.Fatalf("got %+v, expected within=%v early=%v", status, tc.withinGoal, tc.early)
			}
		})
	}
}

func TestClassifyGoalTimeUnknownGoalUsesDefault(t *testing.T) {
	// An unrecognized selection classifies against the early window.
	status := ClassifyGoalTime(atClock(7, 0), "whenever", time.UTC)
	if !status.IsWithinGoal || status.IsEarly {
		t.Fatalf("expected 07:00 within the default early window, got %+v", status)
	}
}

func TestIsEarlyBird(t *testing.T) {
	if !IsEarlyBird(atClock(7, 59), time.UTC) {
		t.Fatal("expected 07:59 to be early bird")
	}
	if IsEarlyBird(atClock(8, 0), time.UTC) {
		t.Fatal("expected 08:00 to not be early bird")
	}
}

func TestIsPastGoalWindow(t *testing.T) {
	if IsPastGoalWindow(atClock(9, 59), models.GoalMid, time.UTC) {
		t.Fatal("expected 09:59 to still be inside the mid window")
	}
	if !IsPastGoalWindow(atClock(10, 0), models.GoalMid, time.UTC) {
		t.Fatal("expected 10:00 to be past the mid window")
	}
	if !IsPastGoalWindow(atClock(12, 0), models.GoalLate, time.UTC) {
		t.Fatal("expected noon to be past the late window")
	}
}

func TestGoalWindowBounds(t *testing.T) {
	cases := []struct {
		goal  string
		start int
		end   int
	}{
		{goal: models.GoalEarly, start: 6, end: 8},
		{goal: models.GoalMid, start: 8, end: 10},
		{goal: models.GoalLate, start: 10, end: 12},
		{goal: "morning", start: 6, end: 8},
	}

	for _, tc := range cases {
		start, end := GoalWindowBounds(tc.goal)
		if start != tc.start || end != tc.end {
			t.Fatalf("GoalWindowBounds(%q) = (%d, %d), expected (%d, %d)", tc.goal, start, end, tc.start, tc.end)
		}
	}
}

func atClock(hour int, minute int) time.Time {
	return time.Date(2025, 6, 15, hour, minute, 0, 0, time.UTC)
}
