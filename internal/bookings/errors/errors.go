package errors

import "errors"

var (
	ErrNotFound = errors.New("booking request not found")

	ErrInvalidID = errors.New("invalid booking request ID format")

	// ErrVersionConflict means the versioned update matched the document by ID
	// but not by version, so another writer got there first.
	ErrVersionConflict = errors.New("booking request version conflict")
)
