// Package usecase implements the business logic for the auth feature.
package usecase

import "errors"

var (
	// ErrUserNotFound is returned when a user cannot be found by email or ID.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailAlreadyExists is returned when attempting to store a user with an email that already exists.
	ErrEmailAlreadyExists = errors.New("email already exists")

	// ErrInvalidCredentials is returned on login when the email or password is wrong.
	// The same error covers both cases so a caller cannot tell which check failed.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrCurrentPasswordIncorrect is returned when a password change supplies a
	// current password that does not verify against the stored hash.
	ErrCurrentPasswordIncorrect = errors.New("current password is incorrect")
)
