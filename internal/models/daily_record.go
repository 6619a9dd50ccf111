package models

import "time"

// DailyRecord is the outcome of one calendar day for one user. The unique
// index keeps at most one record per (user, local day).
type DailyRecord struct {
	ID     uint      `gorm:"primaryKey"`
	UserID uint      `gorm:"not null;uniqueIndex:uidx_user_date"`
	Date   time.Time `gorm:"type:date;not null;uniqueIndex:uidx_user_date"`
	Made   bool      `gorm:"not null;default:false"`

	// MadeAt is the first verification time of the day and is only
	// meaningful while Made is true.
	MadeAt          *time.Time
	VerifiedByPhoto bool    `gorm:"not null;default:false"`
	Confidence      float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
}
