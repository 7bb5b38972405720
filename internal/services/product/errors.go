package product

import "errors"

// Product-related errors
var (
	ErrInvalidProductID = errors.New("invalid product ID")
	ErrProductNotFound  = errors.New("product not found")
	ErrEmptyName        = errors.New("product name cannot be empty")
	ErrNegativePrice    = errors.New("product price cannot be negative")
)
