package db

import "gorm.io/gorm"

type Repositories struct {
	Users        *UserRepository
	DailyRecords *DailyRecordRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(database),
		DailyRecords: NewDailyRecordRepository(database),
	}
}
