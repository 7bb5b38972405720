package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// withTx executes a function within a database transaction.
// It automatically handles begin, rollback on error, and commit on success.
func withTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			slog.Error("failed to rollback transaction", "error", err)
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// uniqueColumn returns the column named in a UNIQUE constraint error,
// e.g. "email" for "UNIQUE constraint failed: users.email (2067)".
func uniqueColumn(err error) string {
	msg := err.Error()
	i := strings.LastIndex(msg, "UNIQUE constraint failed: ")
	if i < 0 {
		return ""
	}
	cols := msg[i+len("UNIQUE constraint failed: "):]
	first, _, _ := strings.Cut(cols, ",")
	_, col, found := strings.Cut(strings.TrimSpace(first), ".")
	if !found {
		return ""
	}
	col, _, _ = strings.Cut(col, " ")
	return col
}
