package dispatch

import (
	"context"

	"github.com/thenoetrevino/tienda/internal/models"
)

// Store is everything the client side can ask of the daemon.
// Depending on it instead of *Client keeps the TUI and CLI testable.
type Store interface {
	Connect(ctx context.Context) error

	// Mutations report rejection through Outcome, transport failure through error
	SubmitEdit(ctx context.Context, review ReviewPayload, reviewID int) (Outcome, error)
	SubmitSignup(ctx context.Context, signup SignupPayload) (Outcome, error)
	Login(ctx context.Context, login LoginPayload) (Outcome, error)
	SetFavorite(ctx context.Context, productID int, fav FavoritePayload) (Outcome, error)

	GetReview(ctx context.Context, reviewID int) (*models.Review, error)
	GetProduct(ctx context.Context, productID int) (*models.ProductDetail, error)
	Stats(ctx context.Context) (*Stats, error)

	Close() error
}

// Compile-time verification that *Client implements Store
var _ Store = (*Client)(nil)
