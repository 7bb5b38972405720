package models

import "errors"

// Domain-specific lookup errors shared by the repository and service layers
var (
	// ErrNotFound indicates the requested row does not exist
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a uniqueness constraint was violated
	ErrConflict = errors.New("already exists")
)
