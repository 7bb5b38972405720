package database

import (
	"context"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ProductReader defines read operations for products.
type ProductReader interface {
	GetAllProducts(ctx context.Context) ([]*models.Product, error)
	GetProductByID(ctx context.Context, id int) (*models.Product, error)
	GetProductDetail(ctx context.Context, id int) (*models.ProductDetail, error)
}

// ProductWriter defines write operations for products.
type ProductWriter interface {
	CreateProduct(ctx context.Context, name, description string, price float64, ownerID int) (*models.Product, error)
	AddFavorite(ctx context.Context, userID, productID int) error
	RemoveFavorite(ctx context.Context, userID, productID int) error
}

// ProductRepository combines all product-related operations.
type ProductRepository interface {
	ProductReader
	ProductWriter
}
