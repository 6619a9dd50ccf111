package api

import (
	"errors"
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
	"github.com/bedmade-app/bedmade/internal/services"
	"github.com/gofiber/fiber/v2"
)

type goalInput struct {
	Goal string `json:"goal"`
}

func (handler *Handler) GetGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	goal := handler.goalService.CurrentGoal(user.ID)
	startHour, endHour := services.GoalWindowBounds(goal)
	return c.JSON(fiber.Map{
		"goal":       goal,
		"start_hour": startHour,
		"end_hour":   endHour,
	})
}

func (handler *Handler) UpdateGoal(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := goalInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid payload")
	}

	goal, err := handler.goalService.UpdateGoal(user.ID, input.Goal)
	if err != nil {
		if errors.Is(err, services.ErrInvalidGoalSelection) {
			return apiError(c, fiber.StatusBadRequest, "invalid goal selection")
		}
		return apiError(c, fiber.StatusInternalServerError, "failed to update goal")
	}

	return c.JSON(fiber.Map{"goal": goal})
}

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	// Streak fields on the user row are a cache; refresh them from history
	// before answering so the profile never drifts from the records.
	now := time.Now().In(handler.location)
	streaks, err := handler.verificationService.Overview(user.ID, now)
	if err == nil {
		user.CurrentStreak = streaks.CurrentStreak
		user.LongestStreak = streaks.LongestStreak
		user.TotalDays = streaks.TotalDays
	}

	return c.JSON(fiber.Map{"user": profileView(user)})
}

func profileView(user *models.User) fiber.Map {
	view := fiber.Map{
		"id":             user.ID,
		"email":          user.Email,
		"username":       user.Username,
		"daily_goal":     services.NormalizeGoal(user.DailyGoal),
		"current_streak": user.CurrentStreak,
		"longest_streak": user.LongestStreak,
		"total_days":     user.TotalDays,
	}
	if user.LastMadeDate != nil {
		view["last_made_date"] = user.LastMadeDate.Format("2006-01-02")
	}
	return view
}
