package model

import "time"

// Semester is an academic term with a validity window. The lifecycle job is
// the sole writer of IsActive; every other semester mutation happens outside
// this core.
type Semester struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   time.Time  `gorm:"not null;index" json:"end_date"`
	IsActive  bool       `gorm:"not null;index;default:true" json:"is_active"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}
