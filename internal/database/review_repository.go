package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ReviewRepo handles all review-related database operations.
type ReviewRepo struct {
	db *sql.DB
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// queryReviews selects reviews joined with their author's username
func queryReviews(ctx context.Context, q queryer, where string, args ...any) ([]*models.Review, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT r.id, r.user_id, u.username, r.product_id, r.body, r.rating, r.created_at, r.updated_at
		FROM reviews r
		INNER JOIN users u ON u.id = r.user_id
		`+where, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews: %w", err)
	}
	defer func() { _ = rows.Close() }()

	reviews := []*models.Review{}
	for rows.Next() {
		rv := &models.Review{}
		if err := rows.Scan(&rv.ID, &rv.UserID, &rv.Username, &rv.ProductID, &rv.Body, &rv.Rating, &rv.CreatedAt, &rv.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan review: %w", err)
		}
		reviews = append(reviews, rv)
	}
	return reviews, rows.Err()
}

// Create inserts a review. A user may review a product only once.
func (r *ReviewRepo) Create(ctx context.Context, userID, productID int, body string, rating int) (*models.Review, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO reviews (user_id, product_id, body, rating) VALUES (?, ?, ?, ?)`,
		userID, productID, body, rating,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &ConflictError{Table: "reviews", Column: "user_id"}
		}
		return nil, fmt.Errorf("failed to insert review for product %d: %w", productID, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get review ID after insert: %w", err)
	}

	return r.GetByID(ctx, int(id))
}

// GetByID retrieves a review by ID
func (r *ReviewRepo) GetByID(ctx context.Context, id int) (*models.Review, error) {
	reviews, err := queryReviews(ctx, r.db, `WHERE r.id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(reviews) == 0 {
		return nil, models.ErrNotFound
	}
	return reviews[0], nil
}

// GetByProduct retrieves a product's reviews, most recently updated first
func (r *ReviewRepo) GetByProduct(ctx context.Context, productID int) ([]*models.Review, error) {
	return queryReviews(ctx, r.db, `WHERE r.product_id = ? ORDER BY r.updated_at DESC, r.id DESC`, productID)
}

// Update replaces a review's body and rating
func (r *ReviewRepo) Update(ctx context.Context, id int, body string, rating int) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE reviews SET body = ?, rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`,
		body, rating, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update review %d: %w", id, err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected for review %d: %w", id, err)
	}
	if n == 0 {
		return models.ErrNotFound
	}
	return nil
}

// Delete removes a review
func (r *ReviewRepo) Delete(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM reviews WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete review %d: %w", id, err)
	}
	return nil
}
