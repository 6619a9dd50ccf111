package services

import (
	"testing"
	"time"
)

func TestDateAtLocationCollapsesSameLocalDay(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	morning := time.Date(2025, 3, 9, 0, 30, 0, 0, location)
	evening := time.Date(2025, 3, 9, 23, 45, 0, 0, location)

	if !DateAtLocation(morning, location).Equal(DateAtLocation(evening, location)) {
		t.Fatal("expected same local day for both timestamps")
	}
	if DayKey(morning, location) != "2025-03-09" {
		t.Fatalf("unexpected day key: %s", DayKey(morning, location))
	}
}

func TestDateAtLocationUsesLocalDayNotUTC(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// 1 AM UTC on March 10 is still March 9 in New York.
	value := time.Date(2025, 3, 10, 1, 0, 0, 0, time.UTC)
	if got := DayKey(value, location); got != "2025-03-09" {
		t.Fatalf("expected 2025-03-09, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		name     string
		a        string
		b        string
		expected int
	}{
		{name: "same day", a: "2025-01-05", b: "2025-01-05", expected: 0},
		{name: "next day", a: "2025-01-05", b: "2025-01-06", expected: 1},
		{name: "previous day", a: "2025-01-06", b: "2025-01-05", expected: -1},
		{name: "across month", a: "2025-01-31", b: "2025-02-02", expected: 2},
		{name: "across year", a: "2024-12-30", b: "2025-01-02", expected: 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			a := mustParseDay(tc.a)
			b := mustParseDay(tc.b)
			if got := DaysBetween(a, b); got != tc.expected {
				t.Fatalf("DaysBetween(%s, %s) = %d, expected %d", tc.a, tc.b, got, tc.expected)
			}
			if got := DaysBetween(b, a); got != -tc.expected {
				t.Fatalf("expected antisymmetry, got %d", got)
			}
		})
	}
}

func TestDaysBetweenIgnoresDaylightSavingShift(t *testing.T) {
	location, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	// The night of March 9, 2025 is only 23 wall-clock hours long in New
	// York; millisecond division would round this to 0 days.
	before := time.Date(2025, 3, 9, 12, 0, 0, 0, location)
	after := time.Date(2025, 3, 10, 12, 0, 0, 0, location)
	if got := DaysBetween(before, after); got != 1 {
		t.Fatalf("expected 1 day across DST transition, got %d", got)
	}
}

func mustParseDay(raw string) time.Time {
	parsed, err := time.ParseInLocation("2006-01-02", raw, time.UTC)
	if err != nil {
		panic(err)
	}
	return parsed
}
