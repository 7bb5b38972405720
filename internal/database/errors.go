package database

import (
	"fmt"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ConflictError reports which unique column rejected a write
type ConflictError struct {
	Table  string
	Column string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s.%s already exists", e.Table, e.Column)
}

// Unwrap lets errors.Is match models.ErrConflict
func (e *ConflictError) Unwrap() error {
	return models.ErrConflict
}
