package services

import (
	"sort"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
)

type StreakState struct {
	CurrentStreak int `json:"current_streak"`
	LongestStreak int `json:"longest_streak"`
	TotalDays     int `json:"total_days"`
}

type dayOutcome struct {
	day  time.Time
	made bool
}

// ComputeStreaks derives streak state from a user's full per-day history.
// It is pure: identical input always yields identical output, and it is the
// single source of truth every caller (API, reminders, cached profile
// counters) goes through.
//
// CurrentStreak is the consecutive made-day run ending at the most recent
// made day, forced to 0 when that day is more than one calendar day before
// today. LongestStreak is the best such run anywhere in the history. A
// made=false day always interrupts a run; so does a missing day.
func ComputeStreaks(records []models.DailyRecord, today time.Time, location *time.Location) StreakState {
	outcomes := make(map[string]dayOutcome, len(records))
	for _, record := range records {
		if record.Date.IsZero() {
			// One malformed row must not zero out the whole streak.
			continue
		}
		day := DateAtLocation(record.Date, location)
		outcomes[day.Format(dayKeyLayout)] = dayOutcome{day: day, made: record.Made}
	}

	sorted := make([]dayOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		sorted = append(sorted, outcome)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].day.Before(sorted[j].day)
	})

	state := StreakState{}
	run := 0
	lastMadeIndex := -1
	var previousMadeDay time.Time

	for index, outcome := range sorted {
		if !outcome.made {
			run = 0
			continue
		}

		state.TotalDays++
		if run > 0 && DaysBetween(previousMadeDay, outcome.day) == 1 {
			run++
		} else {
			run = 1
		}
		if run > state.LongestStreak {
			state.LongestStreak = run
		}
		previousMadeDay = outcome.day
		lastMadeIndex = index
	}

	if lastMadeIndex < 0 {
		return state
	}

	lastMadeDay := sorted[lastMadeIndex].day
	if DaysBetween(lastMadeDay, DateAtLocation(today, location)) > 1 {
		// Broken by absence. LongestStreak still reflects the historical best.
		return state
	}

	current := 1
	previous := lastMadeDay
	for index := lastMadeIndex - 1; index >= 0; index-- {
		if !sorted[index].made {
			break
		}
		if DaysBetween(sorted[index].day, previous) != 1 {
			break
		}
		current++
		previous = sorted[index].day
	}
	state.CurrentStreak = current

	return state
}

// LastMadeDay returns the most recent made=true calendar day in the history.
func LastMadeDay(records []models.DailyRecord, location *time.Location) (time.Time, bool) {
	var last time.Time
	found := false
	for _, record := range records {
		if !record.Made || record.Date.IsZero() {
			continue
		}
		day := DateAtLocation(record.Date, location)
		if !found || day.After(last) {
			last = day
			found = true
		}
	}
	return last, found
}
