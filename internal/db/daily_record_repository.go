package db

import (
	"time"

	"github.com/bedmade-app/bedmade/internal/models"
	"gorm.io/gorm"
)

type DailyRecordRepository struct {
	database *gorm.DB
}

func NewDailyRecordRepository(database *gorm.DB) *DailyRecordRepository {
	return &DailyRecordRepository{database: database}
}

func (repo *DailyRecordRepository) ListByUser(userID uint) ([]models.DailyRecord, error) {
	records := make([]models.DailyRecord, 0)
	if err := repo.database.Where("user_id = ?", userID).Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DailyRecordRepository) ListByUserRange(userID uint, fromStart *time.Time, toEnd *time.Time) ([]models.DailyRecord, error) {
	query := repo.database.Model(&models.DailyRecord{}).Where("user_id = ?", userID)
	if fromStart != nil {
		query = query.Where("date >= ?", *fromStart)
	}
	if toEnd != nil {
		query = query.Where("date < ?", *toEnd)
	}

	records := make([]models.DailyRecord, 0)
	if err := query.Order("date ASC, id ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (repo *DailyRecordRepository) FindByUserAndDayRange(userID uint, dayStart time.Time, dayEnd time.Time) (models.DailyRecord, bool, error) {
	record := models.DailyRecord{}
	result := repo.database.
		Where("user_id = ? AND date >= ? AND date < ?", userID, dayStart, dayEnd).
		Order("date DESC, id DESC").
		Limit(1).
		Find(&record)
	if result.Error != nil {
		return models.DailyRecord{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyRecord{}, false, nil
	}
	return record, true, nil
}

func (repo *DailyRecordRepository) Create(record *models.DailyRecord) error {
	return repo.database.Create(record).Error
}

func (repo *DailyRecordRepository) Save(record *models.DailyRecord) error {
	return repo.database.Save(record).Error
}

func (repo *DailyRecordRepository) DeleteAllByUser(userID uint) error {
	return repo.database.Where("user_id = ?", userID).Delete(&models.DailyRecord{}).Error
}
