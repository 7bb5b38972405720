package forms

import (
	"context"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/models"
)

// ReviewDispatcher sends a review edit to the store
type ReviewDispatcher interface {
	SubmitEdit(ctx context.Context, review dispatch.ReviewPayload, reviewID int) (dispatch.Outcome, error)
}

// SignupDispatcher sends a new account to the store
type SignupDispatcher interface {
	SubmitSignup(ctx context.Context, signup dispatch.SignupPayload) (dispatch.Outcome, error)
}

// Refresher re-fetches a product after one of its reviews changed.
// Implementations must not block.
type Refresher interface {
	ReloadProduct(productID int)
}

// Modal closes the overlay hosting a form
type Modal interface {
	CloseForm()
}

// Identity provides the signed in user
type Identity interface {
	CurrentUserID() (int, bool)
}

// SessionWriter signs a freshly created account in
type SessionWriter interface {
	SignIn(user *models.User) error
}
