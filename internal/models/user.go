package models

import "time"

// User represents a store account.
// The password hash never leaves the daemon.
type User struct {
	ID           int       `json:"id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Favorite marks a product a user has saved
type Favorite struct {
	ID        int
	ProductID int
	UserID    int
	CreatedAt time.Time
}
