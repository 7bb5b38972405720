package database

import (
	"context"
	"database/sql"

	"github.com/thenoetrevino/tienda/internal/models"
)

// Repository provides a unified interface to all data operations.
// It composes domain-specific repositories using struct embedding.
type Repository struct {
	*UserRepo
	*ProductRepo
	*ReviewRepo
}

// NewRepository creates a new Repository instance wrapping the given database connection.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		UserRepo:    &UserRepo{db: db},
		ProductRepo: &ProductRepo{db: db},
		ReviewRepo:  &ReviewRepo{db: db},
	}
}

// Wrapper methods for UserRepo
func (r *Repository) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	return r.UserRepo.Create(ctx, user)
}

func (r *Repository) GetUserByID(ctx context.Context, id int) (*models.User, error) {
	return r.UserRepo.GetByID(ctx, id)
}

func (r *Repository) GetUserByCredential(ctx context.Context, credential string) (*models.User, error) {
	return r.UserRepo.GetByCredential(ctx, credential)
}

// Wrapper methods for ProductRepo
func (r *Repository) CreateProduct(ctx context.Context, name, description string, price float64, ownerID int) (*models.Product, error) {
	return r.ProductRepo.Create(ctx, name, description, price, ownerID)
}

func (r *Repository) GetAllProducts(ctx context.Context) ([]*models.Product, error) {
	return r.ProductRepo.GetAll(ctx)
}

func (r *Repository) GetProductByID(ctx context.Context, id int) (*models.Product, error) {
	return r.ProductRepo.GetByID(ctx, id)
}

func (r *Repository) GetProductDetail(ctx context.Context, id int) (*models.ProductDetail, error) {
	return r.ProductRepo.GetDetail(ctx, id)
}

// Wrapper methods for ReviewRepo
func (r *Repository) CreateReview(ctx context.Context, userID, productID int, body string, rating int) (*models.Review, error) {
	return r.ReviewRepo.Create(ctx, userID, productID, body, rating)
}

func (r *Repository) GetReviewByID(ctx context.Context, id int) (*models.Review, error) {
	return r.ReviewRepo.GetByID(ctx, id)
}

func (r *Repository) GetReviewsByProduct(ctx context.Context, productID int) ([]*models.Review, error) {
	return r.ReviewRepo.GetByProduct(ctx, productID)
}

func (r *Repository) UpdateReview(ctx context.Context, id int, body string, rating int) error {
	return r.ReviewRepo.Update(ctx, id, body, rating)
}

func (r *Repository) DeleteReview(ctx context.Context, id int) error {
	return r.ReviewRepo.Delete(ctx, id)
}
