package api

import (
	"time"

	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/gofiber/fiber/v2"
)

// GetStatsOverview recomputes streak state from the stored history; the
// cached profile counters are never trusted for display.
func (handler *Handler) GetStatsOverview(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := time.Now().In(handler.location)
	streaks, err := handler.verificationService.Overview(user.ID, now)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load stats")
	}

	goal := handler.goalService.CurrentGoal(user.ID)
	overview := fiber.Map{
		"current_streak":   streaks.CurrentStreak,
		"longest_streak":   streaks.LongestStreak,
		"total_days":       streaks.TotalDays,
		"goal":             goal,
		"past_goal_window": services.IsPastGoalWindow(now, goal, handler.location),
	}

	record, found, status, err := handler.verificationService.TodayRecord(user.ID, now)
	if err == nil {
		overview["verified_today"] = found
		if found {
			overview["made_today"] = record.Made
			overview["is_within_goal"] = status.IsWithinGoal
			overview["is_early"] = status.IsEarly
		}
	}

	return c.JSON(overview)
}
