// Package usecase implements the business logic for the tasks feature.
package usecase

import (
	"errors"
	"fmt"
)

// ErrTaskNotFound is returned when no task matches the given ID for the
// requesting owner. Another owner's task is indistinguishable from a
// missing one.
var ErrTaskNotFound = errors.New("task not found")

// ErrInvalidFilter is the base error for rejected list parameters.
// Handlers match against it to map filter failures to 400.
var ErrInvalidFilter = errors.New("invalid task filter")

var (
	// ErrInvalidStatus is returned for a status outside the three known values.
	ErrInvalidStatus = fmt.Errorf("%w: status must be pending, in_progress or completed", ErrInvalidFilter)

	// ErrInvalidLimit is returned for a limit outside 1..100.
	ErrInvalidLimit = fmt.Errorf("%w: limit must be between 1 and 100", ErrInvalidFilter)

	// ErrInvalidOffset is returned for a negative offset.
	ErrInvalidOffset = fmt.Errorf("%w: offset must not be negative", ErrInvalidFilter)
)
