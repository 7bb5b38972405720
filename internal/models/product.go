package models

import (
	"slices"
	"time"
)

// Product represents a single item listed in the store
type Product struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OwnerID     int       `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductDetail is a DTO for the product page
// Contains the product plus its derived review aggregate
type ProductDetail struct {
	Product
	Reviews       []*Review `json:"reviews"`
	AverageRating float64   `json:"average_rating"` // 0 when the product has no reviews
	ReviewCount   int       `json:"review_count"`
	FavoriteCount int       `json:"favorite_count"`

	FavoriteUserIDs []int `json:"favorite_user_ids,omitempty"`
}

// ReviewByUser returns the review written by userID, or nil if there is none
func (d *ProductDetail) ReviewByUser(userID int) *Review {
	if d == nil {
		return nil
	}
	for _, r := range d.Reviews {
		if r.UserID == userID {
			return r
		}
	}
	return nil
}

// FavoritedBy reports whether userID has marked the product as a favorite
func (d *ProductDetail) FavoritedBy(userID int) bool {
	if d == nil {
		return false
	}
	return slices.Contains(d.FavoriteUserIDs, userID)
}
