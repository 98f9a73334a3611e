package model

import "time"

const (
	ActivityMessageSent     = "message.sent"
	ActivityNoticePublished = "notice.published"
)

// ActivityEvent is an append-only audit record feeding the analytics view.
// Events are emitted after the durable write they describe and persisted by
// the activity worker.
type ActivityEvent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Kind      string    `gorm:"size:32;not null;index" json:"kind"`
	ActorID   uint      `gorm:"not null;index" json:"actor_id"`
	SubjectID uint      `gorm:"not null" json:"subject_id"`
	Detail    string    `gorm:"size:255" json:"detail,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
