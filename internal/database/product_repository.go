package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ProductRepo handles all product and favorite database operations.
type ProductRepo struct {
	db *sql.DB
}

// Create inserts a product owned by ownerID
func (r *ProductRepo) Create(ctx context.Context, name, description string, price float64, ownerID int) (*models.Product, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO products (name, description, price, owner_id) VALUES (?, ?, ?, ?)`,
		name, description, price, ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert product '%s': %w", name, err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get product ID after insert: %w", err)
	}

	return r.GetByID(ctx, int(id))
}

// GetAll retrieves every product, oldest first
func (r *ProductRepo) GetAll(ctx context.Context) ([]*models.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, description, price, owner_id, created_at, updated_at FROM products ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var products []*models.Product
	for rows.Next() {
		p := &models.Product{}
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// GetByID retrieves a product by ID
func (r *ProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	p := &models.Product{}
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name, description, price, owner_id, created_at, updated_at FROM products WHERE id = ?`,
		id,
	).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product %d: %w", id, err)
	}
	return p, nil
}

// GetDetail retrieves a product with its reviews, rating average and
// favorite count in a single read transaction.
func (r *ProductRepo) GetDetail(ctx context.Context, id int) (*models.ProductDetail, error) {
	detail := &models.ProductDetail{}

	err := withTx(ctx, r.db, func(tx *sql.Tx) error {
		p := &detail.Product
		err := tx.QueryRowContext(ctx,
			`SELECT id, name, description, price, owner_id, created_at, updated_at FROM products WHERE id = ?`,
			id,
		).Scan(&p.ID, &p.Name, &p.Description, &p.Price, &p.OwnerID, &p.CreatedAt, &p.UpdatedAt)
		if errors.Is(err, sql.ErrNoRows) {
			return models.ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("failed to get product %d: %w", id, err)
		}

		reviews, err := queryReviews(ctx, tx, `WHERE r.product_id = ? ORDER BY r.updated_at DESC, r.id DESC`, id)
		if err != nil {
			return err
		}
		detail.Reviews = reviews

		rows, err := tx.QueryContext(ctx,
			`SELECT user_id FROM favorites WHERE product_id = ? ORDER BY user_id`, id,
		)
		if err != nil {
			return fmt.Errorf("failed to query favorites for product %d: %w", id, err)
		}
		defer func() { _ = rows.Close() }()

		for rows.Next() {
			var userID int
			if err := rows.Scan(&userID); err != nil {
				return fmt.Errorf("failed to scan favorite: %w", err)
			}
			detail.FavoriteUserIDs = append(detail.FavoriteUserIDs, userID)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	detail.FavoriteCount = len(detail.FavoriteUserIDs)
	detail.ReviewCount = len(detail.Reviews)
	if detail.ReviewCount > 0 {
		sum := 0
		for _, rv := range detail.Reviews {
			sum += rv.Rating
		}
		detail.AverageRating = float64(sum) / float64(detail.ReviewCount)
	}

	return detail, nil
}

// AddFavorite marks productID as a favorite of userID. Adding twice is a no-op.
func (r *ProductRepo) AddFavorite(ctx context.Context, userID, productID int) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (user_id, product_id) VALUES (?, ?)`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to add favorite for user %d on product %d: %w", userID, productID, err)
	}
	return nil
}

// RemoveFavorite clears the favorite mark
func (r *ProductRepo) RemoveFavorite(ctx context.Context, userID, productID int) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND product_id = ?`,
		userID, productID,
	)
	if err != nil {
		return fmt.Errorf("failed to remove favorite for user %d on product %d: %w", userID, productID, err)
	}
	return nil
}
