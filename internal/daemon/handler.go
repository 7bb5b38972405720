package daemon

import (
	"context"
	"errors"
	"log/slog"

	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/services/product"
	"github.com/thenoetrevino/tienda/internal/services/review"
	"github.com/thenoetrevino/tienda/internal/services/user"
)

// Handler answers a single store request
type Handler interface {
	Handle(ctx context.Context, req dispatch.Request) dispatch.Response
}

// Messages sent back in Outcome.Errors
const (
	msgReviewFailed  = "Failed to update the review"
	msgSignupFailed  = "Unable to sign up right now. Please try again."
	msgNotOwner      = "You can only edit your own reviews"
	msgBadLogin      = "Invalid username or password"
	msgBadRequest    = "Malformed request"
	msgUnknownKind   = "Unknown request"
	msgRateLimited   = "Too many requests. Please slow down."
	msgInternalError = "Something went wrong in the store"
	msgFavoriteAuth  = "You must be signed in to save favorites"
)

// StoreHandler routes requests to the domain services
type StoreHandler struct {
	Reviews  review.Service
	Users    user.Service
	Products product.Service
}

// NewStoreHandler creates a handler over the given services
func NewStoreHandler(reviews review.Service, users user.Service, products product.Service) *StoreHandler {
	return &StoreHandler{Reviews: reviews, Users: users, Products: products}
}

func failure(code string, errs map[string]string) dispatch.Outcome {
	return dispatch.Outcome{Code: code, Errors: errs}
}

func serverFailure(code, msg string) dispatch.Outcome {
	return failure(code, map[string]string{dispatch.ErrorKeyServer: msg})
}

// Handle implements Handler
func (h *StoreHandler) Handle(ctx context.Context, req dispatch.Request) dispatch.Response {
	resp := dispatch.Response{ID: req.ID}

	switch req.Kind {
	case dispatch.KindReviewGet:
		rv, err := h.Reviews.GetReview(ctx, req.ReviewID)
		if err != nil {
			resp.Outcome = reviewFailure(err)
			break
		}
		resp.Review = rv

	case dispatch.KindReviewEdit:
		resp.Outcome = h.editReview(ctx, req)

	case dispatch.KindSignup:
		resp.Outcome = h.signup(ctx, req)

	case dispatch.KindLogin:
		if req.Login == nil {
			resp.Outcome = serverFailure(dispatch.CodeInvalid, msgBadRequest)
			break
		}
		u, err := h.Users.Login(ctx, req.Login.Credential, req.Login.Password)
		if errors.Is(err, user.ErrInvalidCredentials) {
			resp.Outcome = serverFailure(dispatch.CodeUnauthorized, msgBadLogin)
			break
		}
		if err != nil {
			slog.Error("login failed", "error", err)
			resp.Outcome = serverFailure(dispatch.CodeInternal, msgInternalError)
			break
		}
		resp.Outcome.User = u

	case dispatch.KindProductGet:
		detail, err := h.Products.GetDetail(ctx, req.ProductID)
		switch {
		case errors.Is(err, product.ErrProductNotFound), errors.Is(err, product.ErrInvalidProductID):
			resp.Outcome = serverFailure(dispatch.CodeNotFound, err.Error())
		case err != nil:
			slog.Error("product lookup failed", "product_id", req.ProductID, "error", err)
			resp.Outcome = serverFailure(dispatch.CodeInternal, msgInternalError)
		default:
			resp.Product = detail
		}

	case dispatch.KindFavorite:
		resp.Outcome = h.favorite(ctx, req)

	default:
		resp.Outcome = serverFailure(dispatch.CodeInvalid, msgUnknownKind)
	}

	return resp
}

func (h *StoreHandler) editReview(ctx context.Context, req dispatch.Request) dispatch.Outcome {
	if req.Review == nil {
		return serverFailure(dispatch.CodeInvalid, msgBadRequest)
	}

	_, err := h.Reviews.UpdateReview(ctx, review.UpdateReviewRequest{
		ReviewID:  req.ReviewID,
		UserID:    req.Review.UserID,
		ProductID: req.Review.ProductID,
		Body:      req.Review.Body,
		Rating:    req.Review.Rating,
	})
	if err != nil {
		return reviewFailure(err)
	}

	slog.Info("review edited", "review_id", req.ReviewID, "user_id", req.Review.UserID)
	return dispatch.Outcome{}
}

// reviewFailure maps review service errors to an outcome
func reviewFailure(err error) dispatch.Outcome {
	switch {
	case errors.Is(err, review.ErrReviewNotFound), errors.Is(err, review.ErrInvalidReviewID):
		return serverFailure(dispatch.CodeNotFound, err.Error())
	case errors.Is(err, review.ErrNotOwner):
		return serverFailure(dispatch.CodeUnauthorized, msgNotOwner)
	case errors.Is(err, review.ErrBodyTooShort), errors.Is(err, review.ErrBodyTooLong):
		return failure(dispatch.CodeInvalid, map[string]string{
			"body":                  err.Error(),
			dispatch.ErrorKeyServer: msgReviewFailed,
		})
	case errors.Is(err, review.ErrInvalidRating):
		return failure(dispatch.CodeInvalid, map[string]string{
			"rating":                err.Error(),
			dispatch.ErrorKeyServer: msgReviewFailed,
		})
	case errors.Is(err, review.ErrProductMismatch):
		return serverFailure(dispatch.CodeInvalid, msgReviewFailed)
	}

	slog.Error("review request failed", "error", err)
	return serverFailure(dispatch.CodeInternal, msgReviewFailed)
}

func (h *StoreHandler) signup(ctx context.Context, req dispatch.Request) dispatch.Outcome {
	if req.Signup == nil {
		return serverFailure(dispatch.CodeInvalid, msgBadRequest)
	}

	u, err := h.Users.Signup(ctx, user.SignupRequest{
		FirstName: req.Signup.FirstName,
		LastName:  req.Signup.LastName,
		Email:     req.Signup.Email,
		Username:  req.Signup.Username,
		Password:  req.Signup.Password,
	})

	var verr *user.ValidationError
	if errors.As(err, &verr) {
		return failure(dispatch.CodeInvalid, verr.Fields)
	}
	if err != nil {
		slog.Error("signup failed", "error", err)
		return serverFailure(dispatch.CodeInternal, msgSignupFailed)
	}

	return dispatch.Outcome{User: u}
}

func (h *StoreHandler) favorite(ctx context.Context, req dispatch.Request) dispatch.Outcome {
	if req.Favorite == nil {
		return serverFailure(dispatch.CodeInvalid, msgBadRequest)
	}
	if req.Favorite.UserID <= 0 {
		return serverFailure(dispatch.CodeUnauthorized, msgFavoriteAuth)
	}

	err := h.Products.SetFavorite(ctx, req.Favorite.UserID, req.ProductID, req.Favorite.Favorite)
	switch {
	case errors.Is(err, product.ErrInvalidProductID):
		return serverFailure(dispatch.CodeNotFound, err.Error())
	case err != nil:
		slog.Error("favorite failed", "product_id", req.ProductID, "user_id", req.Favorite.UserID, "error", err)
		return serverFailure(dispatch.CodeInternal, msgInternalError)
	}

	slog.Info("favorite updated", "product_id", req.ProductID, "user_id", req.Favorite.UserID, "favorite", req.Favorite.Favorite)
	return dispatch.Outcome{}
}
