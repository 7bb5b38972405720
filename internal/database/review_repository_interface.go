package database

import (
	"context"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ReviewReader defines read operations for reviews.
type ReviewReader interface {
	GetReviewByID(ctx context.Context, id int) (*models.Review, error)
	GetReviewsByProduct(ctx context.Context, productID int) ([]*models.Review, error)
}

// ReviewWriter defines write operations for reviews.
type ReviewWriter interface {
	CreateReview(ctx context.Context, userID, productID int, body string, rating int) (*models.Review, error)
	UpdateReview(ctx context.Context, id int, body string, rating int) error
	DeleteReview(ctx context.Context, id int) error
}

// ReviewRepository combines all review-related operations.
type ReviewRepository interface {
	ReviewReader
	ReviewWriter
}
