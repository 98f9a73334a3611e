package repository

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"smart-campus/internal/model"
)

type SemesterRepository struct {
	db *gorm.DB
}

func NewSemesterRepository(db *gorm.DB) *SemesterRepository {
	return &SemesterRepository{db: db}
}

// DeactivateExpired flips is_active on every active semester whose end date
// is behind now, in one bulk update, and reports how many rows changed.
// A second call with no intervening changes matches zero rows.
func (r *SemesterRepository) DeactivateExpired(now time.Time) (int64, error) {
	result := r.db.
		Model(&model.Semester{}).
		Where("is_active = ? AND end_date < ?", true, now).
		Update("is_active", false)
	if result.Error != nil {
		return 0, fmt.Errorf("deactivate expired semesters failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
