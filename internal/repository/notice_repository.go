package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smart-campus/internal/model"
)

type NoticeRepository struct {
	db *gorm.DB
}

func NewNoticeRepository(db *gorm.DB) *NoticeRepository {
	return &NoticeRepository{db: db}
}

func (r *NoticeRepository) Create(notice *model.Notice) error {
	if err := r.db.Create(notice).Error; err != nil {
		return fmt.Errorf("create notice failed: %w", err)
	}
	return nil
}

func (r *NoticeRepository) GetByID(id uint) (*model.Notice, error) {
	var notice model.Notice
	if err := r.db.Preload("Author").First(&notice, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query notice by id failed: %w", err)
	}
	return &notice, nil
}

// ListVisibleToRole returns every broadcast notice plus those targeted at
// exactly the given role. Ordering is left to the service, which owns the
// priority-then-recency sort.
func (r *NoticeRepository) ListVisibleToRole(role string) ([]model.Notice, error) {
	var notices []model.Notice
	err := r.db.
		Where("target_role IS NULL OR target_role = ?", role).
		Preload("Author").
		Order("created_at DESC").
		Find(&notices).Error
	if err != nil {
		return nil, fmt.Errorf("list notices failed: %w", err)
	}
	return notices, nil
}
