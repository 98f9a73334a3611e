package model

import "time"

const (
	ChatTypePrivate = "PRIVATE"
	ChatTypeRoom    = "ROOM"
)

// Message is immutable once created: the core has no update or delete path.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	SenderID   uint      `gorm:"not null;index" json:"sender_id"`
	ReceiverID *uint     `gorm:"index" json:"receiver_id,omitempty"`
	ChatType   string    `gorm:"size:16;not null;default:PRIVATE" json:"chat_type"`
	RoomID     *string   `gorm:"size:64;index" json:"room_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	Sender   *UserRef `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *UserRef `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}
