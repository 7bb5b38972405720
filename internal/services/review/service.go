package review

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"unicode/utf8"

	"github.com/thenoetrevino/tienda/internal/database"
	"github.com/thenoetrevino/tienda/internal/models"
)

// Service defines all review-related business operations
type Service interface {
	GetReview(ctx context.Context, reviewID int) (*models.Review, error)
	CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, error)
	UpdateReview(ctx context.Context, req UpdateReviewRequest) (*models.Review, error)
}

// CreateReviewRequest encapsulates all data needed to create a review
type CreateReviewRequest struct {
	UserID    int
	ProductID int
	Body      string
	Rating    int
}

// UpdateReviewRequest encapsulates an edit made by the review's author
type UpdateReviewRequest struct {
	ReviewID  int
	UserID    int
	ProductID int
	Body      string
	Rating    int
}

// service implements Service interface
type service struct {
	repo database.ReviewRepository
}

// NewService creates a new review service
func NewService(repo database.ReviewRepository) Service {
	return &service{repo: repo}
}

// GetReview retrieves a review by ID
func (s *service) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	if reviewID <= 0 {
		return nil, ErrInvalidReviewID
	}

	rv, err := s.repo.GetReviewByID(ctx, reviewID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrReviewNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get review: %w", err)
	}
	return rv, nil
}

// CreateReview stores a new review after sanitizing and validating it
func (s *service) CreateReview(ctx context.Context, req CreateReviewRequest) (*models.Review, error) {
	body, err := cleanReview(req.Body, req.Rating)
	if err != nil {
		return nil, err
	}

	rv, err := s.repo.CreateReview(ctx, req.UserID, req.ProductID, body, req.Rating)
	if err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}
	return rv, nil
}

// UpdateReview applies an edit. Only the author may edit, and the review
// must belong to the named product.
func (s *service) UpdateReview(ctx context.Context, req UpdateReviewRequest) (*models.Review, error) {
	body, err := cleanReview(req.Body, req.Rating)
	if err != nil {
		return nil, err
	}

	existing, err := s.GetReview(ctx, req.ReviewID)
	if err != nil {
		return nil, err
	}
	if existing.UserID != req.UserID {
		slog.Warn("review edit by non-owner", "review_id", req.ReviewID, "user_id", req.UserID)
		return nil, ErrNotOwner
	}
	if req.ProductID != 0 && existing.ProductID != req.ProductID {
		return nil, ErrProductMismatch
	}

	if err := s.repo.UpdateReview(ctx, req.ReviewID, body, req.Rating); err != nil {
		return nil, fmt.Errorf("failed to update review: %w", err)
	}

	return s.GetReview(ctx, req.ReviewID)
}

// cleanReview sanitizes body and checks it and rating against the store rules
func cleanReview(body string, rating int) (string, error) {
	if rating < models.MinRating || rating > models.MaxRating {
		return "", ErrInvalidRating
	}

	body = sanitizeBody(body)
	n := utf8.RuneCountInString(body)
	if n < models.MinReviewLength {
		return "", ErrBodyTooShort
	}
	if n > models.MaxReviewLength {
		return "", ErrBodyTooLong
	}
	return body, nil
}
