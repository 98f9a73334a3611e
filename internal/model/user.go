package model

import "time"

const (
	RoleStudent = "STUDENT"
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

// AllRoles lists every role a notice can target. Broadcast notices
// (target_role NULL) are visible to all of them.
var AllRoles = []string{RoleStudent, RoleFaculty, RoleAdmin}

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"size:64;not null" json:"first_name"`
	LastName     string    `gorm:"size:64;not null" json:"last_name"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:16;not null;index;default:STUDENT" json:"role"`
	StudentID    *string   `gorm:"size:32" json:"student_id,omitempty"`
	Year         *int      `json:"year,omitempty"`
	Section      *string   `gorm:"size:16" json:"section,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleFaculty, RoleAdmin:
		return true
	}
	return false
}
