package repositories

import "errors"

var (
	// ErrDuplicateUsername is returned when creating a user whose username is taken
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrAmbiguousUsername is returned when a lookup by username matches more than one record.
	// Both schemas enforce uniqueness, so seeing it means the storage layer lost that constraint.
	ErrAmbiguousUsername = errors.New("username matches more than one user")
)
