package models

import (
	"time"
)

const (
	ROLE_USER  = "user"
	ROLE_ADMIN = "admin"
)

// User is the identity record for a resident. The ID is the opaque subject
// string issued by the external identity provider; we never mint our own.
// Rows are upserted on every successful sign-in and never deleted. Email is
// NULL when the provider claim carries none, so the unique index only
// applies to present addresses.
type User struct {
	ID              string    `gorm:"primaryKey;type:varchar(64)" json:"id"`
	Email           *string   `gorm:"uniqueIndex;type:varchar(200)" json:"email"`
	FirstName       string    `gorm:"type:varchar(100)" json:"firstName"`
	LastName        string    `gorm:"type:varchar(100)" json:"lastName"`
	ProfileImageURL string    `gorm:"type:varchar(255)" json:"profileImageUrl"`
	Role            string    `gorm:"type:varchar(50);default:'user'" json:"role"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}

// IsAdmin reports whether the user carries the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == ROLE_ADMIN
}

// DisplayName returns a human-readable name, falling back to the email and
// then the subject id.
func (u *User) DisplayName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.Email != nil:
		return *u.Email
	default:
		return u.ID
	}
}
