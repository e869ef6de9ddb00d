// Package entity defines the domain entities for the auth feature.
package entity

import "time"

// User represents a registered user in the system.
// It contains authentication credentials and profile data.
type User struct {
	// ID is the unique identifier for the user.
	ID uint `gorm:"primaryKey"`

	// Name is the user's display name.
	Name string `gorm:"size:255;not null"`

	// Email is the user's email address used for authentication.
	// It must be unique across all users.
	Email string `gorm:"uniqueIndex;size:255;not null"`

	// Password is the bcrypt hash of the user's password.
	// Plaintext passwords are never stored and the hash is never serialized.
	Password string `gorm:"size:255;not null"`

	// CreatedAt is the timestamp when the user was created.
	CreatedAt time.Time
}

// TableName overrides the default table name used by GORM.
func (User) TableName() string {
	return "users"
}
