package models

import "time"

const (
	GoalEarly = "early"
	GoalMid   = "mid"
	GoalLate  = "late"

	// DefaultGoal is applied whenever a stored selection is missing or
	// unrecognized.
	DefaultGoal = GoalEarly
)

type User struct {
	ID           uint   `gorm:"primaryKey"`
	Email        string `gorm:"uniqueIndex;not null"`
	Username     string `gorm:"not null"`
	PasswordHash string `gorm:"not null"`
	DailyGoal    string `gorm:"not null;default:''"`

	// Cached streak counters, synced after each verification. Ground truth
	// is always recomputed from daily_records.
	CurrentStreak int `gorm:"not null;default:0"`
	LongestStreak int `gorm:"not null;default:0"`
	TotalDays     int `gorm:"not null;default:0"`
	LastMadeDate  *time.Time

	CreatedAt   time.Time `gorm:"not null"`
	LastLoginAt *time.Time
}
