package app

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"smart-campus/internal/model"
)

var (
	ErrInvalidInput  = errors.New("invalid input")
	ErrMessageEmpty  = errors.New("message content is empty")
	ErrInvalidTarget = errors.New("message target is missing or ambiguous")
)

// MessageStore is the persistence gateway for messages. The unbounded
// ListConversation contract lives behind this interface so a cursor-based
// store can replace it without touching callers.
type MessageStore interface {
	Create(message *model.Message) error
	GetByID(id uint) (*model.Message, error)
	ListConversation(requesterID, counterpartID uint, roomID *string) ([]model.Message, error)
}

// ActivityPublisher emits audit events. Publishing is best effort: a failed
// publish is logged and never surfaced to the caller.
type ActivityPublisher interface {
	Publish(ctx context.Context, event model.ActivityEvent) error
}

type MessagingService struct {
	messages MessageStore
	activity ActivityPublisher
}

type SendMessageInput struct {
	SenderID   uint
	Content    string
	ChatType   string
	ReceiverID *uint
	RoomID     *string
}

func NewMessagingService(messages MessageStore, activity ActivityPublisher) *MessagingService {
	return &MessagingService{
		messages: messages,
		activity: activity,
	}
}

// Send validates the target and persists one message. Exactly one of
// receiver (PRIVATE) or room (ROOM) must be set; ambiguous or empty targets
// are rejected before any write.
func (s *MessagingService) Send(input SendMessageInput) (*model.Message, error) {
	if input.SenderID == 0 {
		return nil, ErrInvalidInput
	}

	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, ErrMessageEmpty
	}

	chatType := strings.TrimSpace(input.ChatType)
	if chatType == "" {
		chatType = model.ChatTypePrivate
	}

	receiverID, roomID, err := resolveTarget(chatType, input.ReceiverID, input.RoomID)
	if err != nil {
		return nil, err
	}

	message := &model.Message{
		Content:    content,
		SenderID:   input.SenderID,
		ReceiverID: receiverID,
		ChatType:   chatType,
		RoomID:     roomID,
		CreatedAt:  time.Now(),
	}
	if err := s.messages.Create(message); err != nil {
		return nil, err
	}

	stored, err := s.messages.GetByID(message.ID)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		stored = message
	}

	s.publishActivity(model.ActivityEvent{
		Kind:      model.ActivityMessageSent,
		ActorID:   input.SenderID,
		SubjectID: message.ID,
		Detail:    chatType,
		CreatedAt: time.Now(),
	})

	return stored, nil
}

// ListConversation returns the full two-way history between the requester
// and the counterpart, oldest first, optionally narrowed to one room.
func (s *MessagingService) ListConversation(requesterID, counterpartID uint, roomID *string) ([]model.Message, error) {
	if requesterID == 0 || counterpartID == 0 {
		return nil, ErrInvalidInput
	}
	if roomID != nil && strings.TrimSpace(*roomID) == "" {
		roomID = nil
	}
	return s.messages.ListConversation(requesterID, counterpartID, roomID)
}

func (s *MessagingService) publishActivity(event model.ActivityEvent) {
	if s.activity == nil {
		return
	}
	if err := s.activity.Publish(context.Background(), event); err != nil {
		log.Printf("publish activity event failed: %v", err)
	}
}

func resolveTarget(chatType string, receiverID *uint, roomID *string) (*uint, *string, error) {
	hasReceiver := receiverID != nil && *receiverID != 0
	hasRoom := roomID != nil && strings.TrimSpace(*roomID) != ""

	switch chatType {
	case model.ChatTypePrivate:
		if !hasReceiver || hasRoom {
			return nil, nil, ErrInvalidTarget
		}
		return receiverID, nil, nil
	case model.ChatTypeRoom:
		if !hasRoom || hasReceiver {
			return nil, nil, ErrInvalidTarget
		}
		trimmed := strings.TrimSpace(*roomID)
		return nil, &trimmed, nil
	}
	return nil, nil, ErrInvalidTarget
}
