package product

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/thenoetrevino/tienda/internal/database"
	"github.com/thenoetrevino/tienda/internal/models"
)

// Service defines all product-related business operations
type Service interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	GetDetail(ctx context.Context, productID int) (*models.ProductDetail, error)
	CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error)
	SetFavorite(ctx context.Context, userID, productID int, favorite bool) error
}

// CreateProductRequest encapsulates all data needed to list a product
type CreateProductRequest struct {
	Name        string
	Description string
	Price       float64
	OwnerID     int
}

// service implements Service interface
type service struct {
	repo database.ProductRepository
}

// NewService creates a new product service
func NewService(repo database.ProductRepository) Service {
	return &service{repo: repo}
}

// ListProducts returns every product
func (s *service) ListProducts(ctx context.Context) ([]*models.Product, error) {
	products, err := s.repo.GetAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return products, nil
}

// GetDetail returns a product with its reviews and aggregates
func (s *service) GetDetail(ctx context.Context, productID int) (*models.ProductDetail, error) {
	if productID <= 0 {
		return nil, ErrInvalidProductID
	}

	detail, err := s.repo.GetProductDetail(ctx, productID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrProductNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get product detail: %w", err)
	}
	return detail, nil
}

// CreateProduct lists a new product
func (s *service) CreateProduct(ctx context.Context, req CreateProductRequest) (*models.Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if req.Price < 0 {
		return nil, ErrNegativePrice
	}

	p, err := s.repo.CreateProduct(ctx, name, strings.TrimSpace(req.Description), req.Price, req.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}
	return p, nil
}

// SetFavorite marks or unmarks a product for a user
func (s *service) SetFavorite(ctx context.Context, userID, productID int, favorite bool) error {
	if productID <= 0 {
		return ErrInvalidProductID
	}
	if favorite {
		return s.repo.AddFavorite(ctx, userID, productID)
	}
	return s.repo.RemoveFavorite(ctx, userID, productID)
}
