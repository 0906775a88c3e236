package model

import (
	"time"

	"github.com/google/uuid"
)

// User is a member of the network.
// Storage identity is the ID alone (primary key); Equal compares the
// profile fields instead, which is what view diffing needs.
type User struct {
	ID           uuid.UUID `gorm:"primaryKey;type:char(36)" json:"id"`
	FirstName    string    `gorm:"size:64;not null" json:"first_name"`
	LastName     string    `gorm:"size:64;not null" json:"last_name"`
	Email        string    `gorm:"uniqueIndex;size:128;not null" json:"email"`
	PasswordHash string    `gorm:"size:72;not null" json:"-"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// NewUser creates a User with a fresh random ID. Rehydration from storage
// uses a plain struct literal instead.
func NewUser(firstName, lastName, email, passwordHash string) *User {
	return &User{
		ID:           uuid.New(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: passwordHash,
	}
}

// Equal reports domain equality: same first name, last name and email,
// regardless of ID or credential.
func (u *User) Equal(o *User) bool {
	if u == nil || o == nil {
		return u == o
	}
	return u.FirstName == o.FirstName && u.LastName == o.LastName && u.Email == o.Email
}
