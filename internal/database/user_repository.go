package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tienda/internal/models"
)

// UserRepo handles all user-related database operations.
type UserRepo struct {
	db *sql.DB
}

const userColumns = `id, first_name, last_name, email, username, password_hash, created_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

// Create inserts a user. A duplicate email or username yields a *ConflictError.
func (r *UserRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO users (first_name, last_name, email, username, password_hash) VALUES (?, ?, ?, ?, ?)`,
		user.FirstName, user.LastName, user.Email, user.Username, user.PasswordHash,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Table: "users", Column: uniqueColumn(err)}
		}
		return nil, fmt.Errorf("failed to insert user '%s': %w", user.Username, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get user ID after insert: %w", err)
	}

	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a user by ID
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %w", id, err)
	}
	return u, nil
}

// GetByCredential retrieves a user by username or email, case-insensitively
func (r *UserRepo) GetByCredential(ctx context.Context, credential string) (*models.User, error) {
	u, err := scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ? OR email = ? LIMIT 1`,
		credential, credential,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user '%s': %w", credential, err)
	}
	return u, nil
}
