package model

// UserRef is a read-only projection of the users table used to attach
// display names to messages and notices. The core never writes through it.
type UserRef struct {
	ID        uint   `json:"-"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role,omitempty"`
}

func (UserRef) TableName() string {
	return "users"
}
