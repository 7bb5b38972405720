package app

import (
	"log/slog"

	"github.com/thenoetrevino/tienda/internal/database"
	productservice "github.com/thenoetrevino/tienda/internal/services/product"
	reviewservice "github.com/thenoetrevino/tienda/internal/services/review"
	userservice "github.com/thenoetrevino/tienda/internal/services/user"
)

// App holds all store services and provides dependency injection.
// The daemon and the seed command both build one over the same repository.
type App struct {
	// Repository layer (direct database access)
	repo database.DataStore

	// Service layer (business logic)
	ReviewService  reviewservice.Service
	UserService    userservice.Service
	ProductService productservice.Service
}

// New creates a new App with all services initialized.
func New(repo database.DataStore, opts ...Option) *App {
	cfg := &appConfig{logger: slog.Default()}
	for _, opt := range opts {
		opt(cfg)
	}

	var userOpts []userservice.Option
	if cfg.hashCost > 0 {
		userOpts = append(userOpts, userservice.WithHashCost(cfg.hashCost))
	}

	cfg.logger.Debug("store services initialized")

	return &App{
		repo:           repo,
		ReviewService:  reviewservice.NewService(repo),
		UserService:    userservice.NewService(repo, userOpts...),
		ProductService: productservice.NewService(repo),
	}
}

// Repo returns the underlying repository for direct database access.
func (a *App) Repo() database.DataStore {
	return a.repo
}
