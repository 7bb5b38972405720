package database

import (
	"context"

	"github.com/thenoetrevino/tienda/internal/models"
)

// UserReader defines read operations for users.
type UserReader interface {
	GetUserByID(ctx context.Context, id int) (*models.User, error)
	GetUserByCredential(ctx context.Context, credential string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
}

// UserRepository combines all user-related operations.
type UserRepository interface {
	UserReader
	UserWriter
}
