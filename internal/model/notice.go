package model

import "time"

const (
	PriorityLow    = "LOW"
	PriorityMedium = "MEDIUM"
	PriorityHigh   = "HIGH"
)

// Notice is a one-to-many announcement. TargetRole nil means every role
// sees it.
type Notice struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Priority   string    `gorm:"size:16;not null;default:MEDIUM" json:"priority"`
	TargetRole *string   `gorm:"size:16;index" json:"target_role,omitempty"`
	AuthorID   uint      `gorm:"not null;index" json:"author_id"`
	CreatedAt  time.Time `json:"created_at"`

	Author *UserRef `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
}

// PriorityRank orders priorities for the feed sort: HIGH > MEDIUM > LOW.
// Unknown values sink below LOW instead of failing.
func PriorityRank(priority string) int {
	switch priority {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	}
	return 0
}

func ValidPriority(priority string) bool {
	switch priority {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}
