package models

import (
	"time"
)

// User represents an account that can sign in with HTTP Basic credentials.
// Password always holds the bcrypt hash, never the plaintext.
type User struct {
	ID           int64     `json:"id" db:"id"`
	FirstName    string    `json:"firstName" db:"first_name"`
	LastName     string    `json:"lastName" db:"last_name"`
	EmailAddress string    `json:"emailAddress" db:"email_address"`
	Password     string    `json:"-" db:"password"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// NewUser creates a new User instance. passwordHash must already be hashed.
func NewUser(firstName, lastName, emailAddress, passwordHash string) *User {
	now := time.Now().UTC()
	return &User{
		FirstName:    firstName,
		LastName:     lastName,
		EmailAddress: emailAddress,
		Password:     passwordHash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}
