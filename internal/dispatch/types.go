package dispatch

import (
	"time"

	"github.com/thenoetrevino/tienda/internal/models"
)

// ProtocolVersion is bumped whenever the wire format changes incompatibly
const ProtocolVersion = 1

// RequestKind names the store operation a request asks for
type RequestKind string

const (
	KindReviewGet  RequestKind = "review.get"
	KindReviewEdit RequestKind = "review.edit"
	KindSignup     RequestKind = "user.signup"
	KindLogin      RequestKind = "user.login"
	KindProductGet RequestKind = "product.get"
	KindFavorite   RequestKind = "product.favorite"
	KindStats      RequestKind = "stats"
)

// Error keys the store uses in Outcome.Errors.
// Field keys match the signup form's field names so they can be shown inline.
const (
	ErrorKeyServer   = "server"
	ErrorKeyEmail    = "email"
	ErrorKeyUsername = "username"
)

// Response codes for failures the client maps back to sentinel errors
const (
	CodeNotFound     = "not_found"
	CodeInvalid      = "invalid"
	CodeUnauthorized = "unauthorized"
	CodeRateLimited  = "rate_limited"
	CodeInternal     = "internal"
)

// ReviewPayload is the body of a review edit.
// It is always a value copy taken at submit time.
type ReviewPayload struct {
	Body      string `json:"body"`
	Rating    int    `json:"rating"`
	ProductID int    `json:"product_id"`
	UserID    int    `json:"user_id"`
}

// SignupPayload carries a new account. The confirmation password is never sent.
type SignupPayload struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Password  string `json:"password"`
}

// LoginPayload carries credentials for an existing account.
// Credential may be a username or an email address.
type LoginPayload struct {
	Credential string `json:"credential"`
	Password   string `json:"password"`
}

// FavoritePayload marks or unmarks a product for a user
type FavoritePayload struct {
	UserID   int  `json:"user_id"`
	Favorite bool `json:"favorite"`
}

// Outcome is the result of a mutation. Any entry in Errors means the store
// rejected the request.
type Outcome struct {
	Errors map[string]string `json:"errors,omitempty"`
	Code   string            `json:"code,omitempty"`
	User   *models.User      `json:"user,omitempty"`
}

// OK reports whether the store accepted the request
func (o Outcome) OK() bool {
	return len(o.Errors) == 0
}

// Request is a single call from a client to the daemon
type Request struct {
	ID        string         `json:"id"`
	Kind      RequestKind    `json:"kind"`
	ReviewID  int            `json:"review_id,omitempty"`
	ProductID int            `json:"product_id,omitempty"`
	Review    *ReviewPayload `json:"review,omitempty"`
	Signup    *SignupPayload `json:"signup,omitempty"`
	Login     *LoginPayload  `json:"login,omitempty"`

	Favorite *FavoritePayload `json:"favorite,omitempty"`
}

// Response answers the Request with the same ID
type Response struct {
	ID      string                `json:"id"`
	Outcome Outcome               `json:"outcome"`
	Review  *models.Review        `json:"review,omitempty"`
	Product *models.ProductDetail `json:"product,omitempty"`
	Stats   *Stats                `json:"stats,omitempty"`
}

// Stats is a point-in-time snapshot of daemon counters
type Stats struct {
	RequestsHandled  int64     `json:"requests_handled"`
	RequestsFailed   int64     `json:"requests_failed"`
	RequestsLimited  int64     `json:"requests_limited"`
	ConnectedClients int32     `json:"connected_clients"`
	StartTime        time.Time `json:"start_time"`
	Uptime           string    `json:"uptime"`
}

// Message wraps requests and responses for the wire protocol
type Message struct {
	Version  int       `json:"version"`
	Type     string    `json:"type"` // "request" or "response"
	Request  *Request  `json:"request,omitempty"`
	Response *Response `json:"response,omitempty"`
}
