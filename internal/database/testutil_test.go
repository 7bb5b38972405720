package database

import (
	"context"
	"database/sql"
	"testing"

	"github.com/thenoetrevino/tienda/internal/models"
	_ "modernc.org/sqlite"
)

// ============================================================================
// DATABASE SETUP HELPERS
// ============================================================================

// setupTestDB creates an in-memory database and runs migrations
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		t.Fatalf("Failed to enable foreign keys: %v", err)
	}

	if err := runMigrations(context.Background(), db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// ============================================================================
// DATA CREATION HELPERS
// ============================================================================

func createTestUser(t *testing.T, repo *Repository, username string) *models.User {
	t.Helper()
	user, err := repo.CreateUser(context.Background(), &models.User{
		FirstName:    "Test",
		LastName:     "User",
		Email:        username + "@example.com",
		Username:     username,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("Failed to create user %s: %v", username, err)
	}
	return user
}

func createTestProduct(t *testing.T, repo *Repository, ownerID int) *models.Product {
	t.Helper()
	product, err := repo.CreateProduct(context.Background(), "Kettle", "Boils water", 24.5, ownerID)
	if err != nil {
		t.Fatalf("Failed to create product: %v", err)
	}
	return product
}
