package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tienda/internal/database"
	"github.com/thenoetrevino/tienda/internal/models"
)

// Service defines all account-related business operations
type Service interface {
	Signup(ctx context.Context, req SignupRequest) (*models.User, error)
	Login(ctx context.Context, credential, password string) (*models.User, error)
	GetUser(ctx context.Context, userID int) (*models.User, error)
}

// service implements Service interface
type service struct {
	repo database.UserRepository
	cost int
}

// Option configures the user service
type Option func(*service)

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *service) {
		s.cost = cost
	}
}

// NewService creates a new user service
func NewService(repo database.UserRepository, opts ...Option) Service {
	s := &service{repo: repo, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup validates the request, hashes the password and stores the account.
// Field problems, including an email or username already in use, come back
// as a *ValidationError.
func (s *service) Signup(ctx context.Context, req SignupRequest) (*models.User, error) {
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if fields, ok := req.Ok(); !ok {
		return nil, &ValidationError{Fields: fields}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.repo.CreateUser(ctx, &models.User{
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		var conflict *database.ConflictError
		if errors.As(err, &conflict) {
			return nil, conflictError(conflict.Column)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("account created", "user_id", u.ID, "username", u.Username)
	return u, nil
}

func conflictError(column string) *ValidationError {
	switch column {
	case "email":
		return &ValidationError{Fields: map[string]string{"email": MsgEmailTaken}}
	case "username":
		return &ValidationError{Fields: map[string]string{"username": MsgUsernameTaken}}
	}
	return &ValidationError{Fields: map[string]string{"server": "Account already exists"}}
}

// Login checks a username or email against the stored password hash
func (s *service) Login(ctx context.Context, credential, password string) (*models.User, error) {
	u, err := s.repo.GetUserByCredential(ctx, strings.TrimSpace(credential))
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return u, nil
}

// GetUser retrieves an account by ID
func (s *service) GetUser(ctx context.Context, userID int) (*models.User, error) {
	u, err := s.repo.GetUserByID(ctx, userID)
	if errors.Is(err, models.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}
