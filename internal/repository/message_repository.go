package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"smart-campus/internal/model"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) *MessageRepository {
	return &MessageRepository{db: db}
}

func (r *MessageRepository) Create(message *model.Message) error {
	if err := r.db.Create(message).Error; err != nil {
		return fmt.Errorf("create message failed: %w", err)
	}
	return nil
}

func (r *MessageRepository) GetByID(id uint) (*model.Message, error) {
	var message model.Message
	err := r.db.
		Preload("Sender").
		Preload("Receiver").
		First(&message, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query message by id failed: %w", err)
	}
	return &message, nil
}

// ListConversation returns the full bidirectional history between requester
// and counterpart, oldest first. When roomID is set the history is further
// narrowed to that room. No pagination: the whole transcript comes back,
// which is the contract callers render directly.
func (r *MessageRepository) ListConversation(requesterID, counterpartID uint, roomID *string) ([]model.Message, error) {
	query := r.db.
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			requesterID, counterpartID, counterpartID, requesterID)
	if roomID != nil {
		query = query.Where("room_id = ?", *roomID)
	}

	var messages []model.Message
	err := query.
		Preload("Sender").
		Preload("Receiver").
		Order("created_at ASC").
		Find(&messages).Error
	if err != nil {
		return nil, fmt.Errorf("list conversation failed: %w", err)
	}
	return messages, nil
}
