package services

import (
	"errors"
	"log"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
)

var ErrClearHistoryFailed = errors.New("clear verification history failed")

type VerificationRecordRepository interface {
	ListByUser(userID uint) ([]models.DailyRecord, error)
	ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error)
	FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyRecord, bool, error)
	Create(record *models.DailyRecord) error
	Save(record *models.DailyRecord) error
	DeleteAllByUser(userID uint) error
}

type VerificationUserRepository interface {
	UpdateByID(userID uint, updates map[string]any) error
}

type GoalSelectionReader interface {
	CurrentGoal(userID uint) string
}

// VerificationInput carries one classification outcome into the orchestrator.
type VerificationInput struct {
	Made            bool
	ObservedAt      time.Time
	VerifiedByPhoto bool
	Confidence      float64
}

type VerificationResult struct {
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
	TotalDays     int    `json:"total_days"`
	IsWithinGoal  bool   `json:"is_within_goal"`
	IsEarly       bool   `json:"is_early"`
	IsEarlyBird   bool   `json:"is_early_bird"`
	IsMadeToday   bool   `json:"is_made_today"`
	WasPersisted  bool   `json:"was_persisted"`
	Goal          string `json:"goal"`
}

type VerificationService struct {
	records  VerificationRecordRepository
	users    VerificationUserRepository
	goals    GoalSelectionReader
	location *time.Location
}

func NewVerificationService(records VerificationRecordRepository, users VerificationUserRepository, goals GoalSelectionReader, location *time.Location) *VerificationService {
	return &VerificationService{
		records:  records,
		users:    users,
		goals:    goals,
		location: locationOrUTC(location),
	}
}

// RecordVerification upserts today's outcome and re-derives streak and goal
// state from the full history. Store failures degrade instead of aborting:
// the user already took the photo, so a best-effort result beats an error.
// WasPersisted tells the caller whether today's record actually reached the
// store.
func (service *VerificationService) RecordVerification(userID uint, input VerificationInput) VerificationResult {
	dayStart, dayEnd := DayRange(input.ObservedAt, service.location)

	persisted := true
	existing, found, err := service.records.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		log.Printf("verification: load today's record failed for user %d: %v", userID, err)
		found = false
		persisted = false
	}

	todays := existing
	if !found || existing.Made != input.Made {
		todays.UserID = userID
		todays.Date = dayStart
		todays.Made = input.Made
		todays.VerifiedByPhoto = input.VerifiedByPhoto
		todays.Confidence = input.Confidence
		if input.Made {
			madeAt := input.ObservedAt
			todays.MadeAt = &madeAt
		} else {
			todays.MadeAt = nil
		}

		if persisted {
			var writeErr error
			if found {
				writeErr = service.records.Save(&todays)
			} else {
				writeErr = service.records.Create(&todays)
			}
			if writeErr != nil {
				log.Printf("verification: persist today's record failed for user %d: %v", userID, writeErr)
				persisted = false
			}
		}
	}
	// A record with the same status already exists: leave it untouched so the
	// first verification time of the day stays authoritative.

	history, err := service.records.ListByUser(userID)
	if err != nil {
		log.Printf("verification: history read failed for user %d, using today's outcome only: %v", userID, err)
		history = nil
	}
	history = patchTodayOutcome(history, todays, service.location)

	streaks := ComputeStreaks(history, input.ObservedAt, service.location)
	goal := service.goals.CurrentGoal(userID)

	status := GoalTimeStatus{}
	earlyBird := false
	if input.Made {
		madeAt := input.ObservedAt
		if todays.MadeAt != nil {
			madeAt = *todays.MadeAt
		}
		status = ClassifyGoalTime(madeAt, goal, service.location)
		earlyBird = IsEarlyBird(madeAt, service.location)
	}

	service.syncProfileCounters(userID, streaks, input.Made, dayStart)

	return VerificationResult{
		CurrentStreak: streaks.CurrentStreak,
		LongestStreak: streaks.LongestStreak,
		TotalDays:     streaks.TotalDays,
		IsWithinGoal:  status.IsWithinGoal,
		IsEarly:       status.IsEarly,
		IsEarlyBird:   earlyBird,
		IsMadeToday:   input.Made,
		WasPersisted:  persisted,
		Goal:          goal,
	}
}

// TodayRecord fetches today's outcome together with its goal classification.
func (service *VerificationService) TodayRecord(userID uint, now time.Time) (models.DailyRecord, bool, GoalTimeStatus, error) {
	dayStart, dayEnd := DayRange(now, service.location)
	record, found, err := service.records.FindByUserAndDayRange(userID, dayStart, dayEnd)
	if err != nil {
		return models.DailyRecord{}, false, GoalTimeStatus{}, err
	}
	if !found || !record.Made || record.MadeAt == nil {
		return record, found, GoalTimeStatus{}, nil
	}

	goal := service.goals.CurrentGoal(userID)
	return record, true, ClassifyGoalTime(*record.MadeAt, goal, service.location), nil
}

// History returns the user's outcomes, optionally bounded to [from, to] local
// days.
func (service *VerificationService) History(userID uint, from *time.Time, to *time.Time) ([]models.DailyRecord, error) {
	if from == nil && to == nil {
		return service.records.ListByUser(userID)
	}

	var fromStart, toEnd *time.Time
	if from != nil {
		start, _ := DayRange(*from, service.location)
		fromStart = &start
	}
	if to != nil {
		_, end := DayRange(*to, service.location)
		toEnd = &end
	}
	return service.records.ListByUserRange(userID, fromStart, toEnd)
}

// Overview recomputes streak state from the stored history for read-only
// callers (stats, profile).
func (service *VerificationService) Overview(userID uint, now time.Time) (StreakState, error) {
	history, err := service.records.ListByUser(userID)
	if err != nil {
		return StreakState{}, err
	}
	return ComputeStreaks(history, now, service.location), nil
}

// ClearHistory deletes every outcome for the user and zeroes the cached
// profile counters. Used by the testing/reset affordance.
func (service *VerificationService) ClearHistory(userID uint) error {
	if err := service.records.DeleteAllByUser(userID); err != nil {
		return ErrClearHistoryFailed
	}
	if err := service.users.UpdateByID(userID, map[string]any{
		"current_streak": 0,
		"longest_streak": 0,
		"total_days":     0,
		"last_made_date": nil,
	}); err != nil {
		return ErrClearHistoryFailed
	}
	return nil
}

// patchTodayOutcome makes sure the in-memory history reflects today's
// outcome even when the store write or read failed.
func patchTodayOutcome(history []models.DailyRecord, today models.DailyRecord, location *time.Location) []models.DailyRecord {
	key := DayKey(today.Date, location)
	for index := range history {
		if DayKey(history[index].Date, location) == key {
			history[index] = today
			return history
		}
	}
	return append(history, today)
}

// syncProfileCounters mirrors derived streak state onto the user row. The
// profile copy is a cache; a failed sync is logged and otherwise ignored.
func (service *VerificationService) syncProfileCounters(userID uint, streaks StreakState, made bool, dayStart time.Time) {
	updates := map[string]any{
		"current_streak": streaks.CurrentStreak,
		"longest_streak": streaks.LongestStreak,
		"total_days":     streaks.TotalDays,
	}
	if made {
		updates["last_made_date"] = dayStart
	}
	if err := service.users.UpdateByID(userID, updates); err != nil {
		log.Printf("verification: sync profile counters failed for user %d: %v", userID, err)
	}
}
