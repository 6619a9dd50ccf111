package services

import (
	"context"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
	"gorm.io/gorm"
)

const (
	reminderBeforeGoal     = "before_goal"
	reminderAtGoal         = "at_goal"
	reminderAfterGoal      = "after_goal"
	reminderStreakRecovery = "streak_recovery"

	// Streak-recovery nudge fires at 8 PM for users who have not verified.
	streakRecoveryHour = 20

	// Before-goal reminders never fire earlier than 6 AM.
	earliestReminderHour = 6
)

type ReminderTime struct {
	Hour   int
	Minute int
}

type ReminderSchedule struct {
	BeforeGoal     ReminderTime
	AtGoal         ReminderTime
	AfterGoal      ReminderTime
	StreakRecovery ReminderTime
}

// ReminderTimesForGoal derives the daily reminder slots from the goal
// window: one hour before its start (clamped to 6 AM), at its start, one hour
// after its start, plus the fixed evening recovery slot.
func ReminderTimesForGoal(goal string) ReminderSchedule {
	startHour, _ := GoalWindowBounds(goal)

	beforeHour := startHour - 1
	if beforeHour < earliestReminderHour {
		beforeHour = earliestReminderHour
	}

	return ReminderSchedule{
		BeforeGoal:     ReminderTime{Hour: beforeHour},
		AtGoal:         ReminderTime{Hour: startHour},
		AfterGoal:      ReminderTime{Hour: startHour + 1},
		StreakRecovery: ReminderTime{Hour: streakRecoveryHour},
	}
}

// ReminderService walks all users on a timer and emits due reminders for
// those who have not verified yet today. Delivery is a collaborator concern;
// this service only decides who is due and logs the decision.
type ReminderService struct {
	db       *gorm.DB
	location *time.Location

	mu   sync.Mutex
	sent map[string]time.Time
}

func NewReminderService(db *gorm.DB, location *time.Location) *ReminderService {
	return &ReminderService{
		db:       db,
		location: locationOrUTC(location),
		sent:     make(map[string]time.Time),
	}
}

func (service *ReminderService) Start(ctx context.Context) {
	ticker := time.NewTicker(15 * time.Minute)
	go func() {
		defer ticker.Stop()

		service.run(ctx)
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				service.run(ctx)
			}
		}
	}()
}

func (service *ReminderService) run(ctx context.Context) {
	users := make([]models.User, 0)
	if err := service.db.WithContext(ctx).Find(&users).Error; err != nil {
		log.Printf("reminders: fetch users failed: %v", err)
		return
	}

	now := time.Now().In(service.location)
	for _, user := range users {
		service.remindUser(ctx, user, now)
	}
}

func (service *ReminderService) remindUser(ctx context.Context, user models.User, now time.Time) {
	kind, due := DueReminder(ReminderTimesForGoal(user.DailyGoal), now)
	if !due {
		return
	}
	if service.alreadySent(user.ID, kind, now) {
		return
	}

	verified, err := service.verifiedToday(ctx, user.ID, now)
	if err != nil {
		log.Printf("reminders: check today's record failed for user %d: %v", user.ID, err)
		return
	}
	if verified {
		return
	}

	service.markSent(user.ID, kind, now)
	log.Printf("reminders: user %d due for %s reminder (goal %s)", user.ID, kind, NormalizeGoal(user.DailyGoal))
}

// DueReminder returns the reminder slot matching the current wall-clock
// hour, if any. Slots are hour-aligned; minutes only disambiguate within the
// hour.
func DueReminder(schedule ReminderSchedule, now time.Time) (string, bool) {
	switch now.Hour() {
	case schedule.BeforeGoal.Hour:
		return reminderBeforeGoal, true
	case schedule.AtGoal.Hour:
		return reminderAtGoal, true
	case schedule.AfterGoal.Hour:
		return reminderAfterGoal, true
	case schedule.StreakRecovery.Hour:
		return reminderStreakRecovery, true
	default:
		return "", false
	}
}

func (service *ReminderService) verifiedToday(ctx context.Context, userID uint, now time.Time) (bool, error) {
	dayStart, dayEnd := DayRange(now, service.location)

	var matched int64
	err := service.db.WithContext(ctx).
		Model(&models.DailyRecord{}).
		Where("user_id = ? AND date >= ? AND date < ? AND made = ?", userID, dayStart, dayEnd, true).
		Count(&matched).Error
	if err != nil {
		return false, err
	}
	return matched > 0, nil
}

func (service *ReminderService) alreadySent(userID uint, kind string, now time.Time) bool {
	service.mu.Lock()
	defer service.mu.Unlock()

	key := sentKey(userID, kind, now, service.location)
	_, sent := service.sent[key]
	return sent
}

func (service *ReminderService) markSent(userID uint, kind string, now time.Time) {
	service.mu.Lock()
	defer service.mu.Unlock()

	key := sentKey(userID, kind, now, service.location)
	service.sent[key] = now

	// Drop entries from previous days so the map does not grow unbounded.
	today := DayKey(now, service.location)
	for existing, at := range service.sent {
		if DayKey(at, service.location) != today {
			delete(service.sent, existing)
		}
	}
}

func sentKey(userID uint, kind string, now time.Time, location *time.Location) string {
	return DayKey(now, location) + "/" + kind + "/" + strconv.FormatUint(uint64(userID), 10)
}
