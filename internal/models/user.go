package models

import (
	"time"
)

// User is the author reference carried on hoots and comments. Ownership checks
// compare ID only.
type User struct {
	ID        string    `gorm:"primaryKey;size:36" json:"_id"`
	Username  string    `gorm:"not null" json:"username"`
	CreatedAt time.Time `json:"-"`
}

// SameUser reports whether u and other are both present and share an ID.
func (u *User) SameUser(other *User) bool {
	if u == nil || other == nil {
		return false
	}
	return u.ID != "" && u.ID == other.ID
}
