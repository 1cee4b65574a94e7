package repository

import (
	"context"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm/clause"

	"github.com/MathiasEthan/RaAI/internal/database"
	"github.com/MathiasEthan/RaAI/internal/models"
)

// SaveCheckin upserts the check-in record for its calendar date. The
// unique date index is the dedup key, so resubmitting a day overwrites
// rather than duplicates.
func SaveCheckin(ctx context.Context, date string, selections []int, score float64) error {
	sel64 := make(pq.Int64Array, len(selections))
	for i, v := range selections {
		sel64[i] = int64(v)
	}
	record := models.CheckinRecord{
		Date:       date,
		Selections: sel64,
		Score:      score,
	}
	return database.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"selections", "score", "updated_at"}),
	}).Create(&record).Error
}

// HasCheckinForDate reports whether a check-in exists for the given
// YYYY-MM-DD date.
func HasCheckinForDate(ctx context.Context, date string) (bool, error) {
	var count int64
	err := database.DB.WithContext(ctx).
		Model(&models.CheckinRecord{}).
		Where("date = ?", date).
		Count(&count).Error
	return count > 0, err
}

// RecentCheckins returns up to the last `days` of check-in records,
// oldest first.
func RecentCheckins(ctx context.Context, now time.Time, days int) ([]models.CheckinRecord, error) {
	since := now.AddDate(0, 0, -days).Format("2006-01-02")
	var records []models.CheckinRecord
	err := database.DB.WithContext(ctx).
		Where("date >= ?", since).
		Order("date ASC").
		Find(&records).Error
	return records, err
}
