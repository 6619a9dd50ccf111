package services

import (
	"errors"
	"log"
	"strings"

	"github.com/bedmade-app/bedmade/internal/models"
)

var ErrInvalidGoalSelection = errors.New("invalid goal selection")

type GoalUserRepository interface {
	FindByID(userID uint) (models.User, error)
	UpdateByID(userID uint, updates map[string]any) error
}

type GoalService struct {
	users GoalUserRepository
}

func NewGoalService(users GoalUserRepository) *GoalService {
	return &GoalService{users: users}
}

// CurrentGoal returns the user's active goal selection. Missing, legacy
// ("morning") and unrecognized stored values normalize to a supported
// selection, and the normalized value is written back so the store converges
// on canonical values. Read or write-back failures degrade to the default
// rather than surfacing an error.
func (service *GoalService) CurrentGoal(userID uint) string {
	user, err := service.users.FindByID(userID)
	if err != nil {
		log.Printf("goal: load selection failed for user %d: %v", userID, err)
		return models.DefaultGoal
	}

	goal := NormalizeGoal(user.DailyGoal)
	if goal != user.DailyGoal {
		if err := service.users.UpdateByID(userID, map[string]any{"daily_goal": goal}); err != nil {
			log.Printf("goal: write back normalized selection failed for user %d: %v", userID, err)
		}
	}
	return goal
}

// UpdateGoal persists a new goal selection. The legacy "morning" alias is
// accepted and stored as early; anything else outside the supported set is
// rejected.
func (service *GoalService) UpdateGoal(userID uint, raw string) (string, error) {
	goal := strings.ToLower(strings.TrimSpace(raw))
	if goal == "morning" {
		goal = models.GoalEarly
	}
	if !IsValidGoal(goal) {
		return "", ErrInvalidGoalSelection
	}

	if err := service.users.UpdateByID(userID, map[string]any{"daily_goal": goal}); err != nil {
		return "", err
	}
	return goal, nil
}
