package review

import "errors"

// Review-related errors
var (
	// Validation errors
	ErrInvalidReviewID = errors.New("invalid review ID")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrBodyTooShort    = errors.New("review text must be at least 10 characters")
	ErrBodyTooLong     = errors.New("review text must be 255 characters or less")

	// Business logic errors
	ErrReviewNotFound  = errors.New("review not found")
	ErrNotOwner        = errors.New("review belongs to another user")
	ErrProductMismatch = errors.New("review does not belong to that product")
)
