package tui

import (
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/forms"
	"github.com/thenoetrevino/tienda/internal/models"
)

// productLoadedMsg carries a fetched product page
type productLoadedMsg struct {
	productID int
	detail    *models.ProductDetail
	err       error
}

// reviewLoadedMsg carries the review to open in the editor
type reviewLoadedMsg struct {
	review *models.Review
	err    error
}

// reviewSubmittedMsg is the result of one review edit dispatch
type reviewSubmittedMsg struct {
	modal  *reviewModal
	result forms.Result
}

// signupSubmittedMsg is the result of one signup dispatch
type signupSubmittedMsg struct {
	modal  *signupModal
	result forms.Result
}

// favoriteToggledMsg is the result of a favorite toggle
type favoriteToggledMsg struct {
	productID int
	favorite  bool
	outcome   dispatch.Outcome
	err       error
}
