package models

import "errors"

// Domain errors shared across the repository, service and handler layers.
// Handlers map these to HTTP statuses; everything else becomes a 500.
var (
	// ErrWrongCredentials covers both an unknown username and a password
	// mismatch so callers cannot tell which of the two happened.
	ErrWrongCredentials = errors.New("wrong credentials")

	// ErrDuplicate is returned when a unique constraint rejects an insert.
	ErrDuplicate = errors.New("already exists")

	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotAuthor is returned when a post mutation comes from a user other
	// than the post's author.
	ErrNotAuthor = errors.New("you are not the author")

	// ErrValidation is returned for missing or malformed input.
	ErrValidation = errors.New("validation failed")
)
