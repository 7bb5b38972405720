package app

import "log/slog"

// Option is a functional option for configuring App initialization
type Option func(*appConfig)

// appConfig holds the configuration for App initialization
type appConfig struct {
	logger   *slog.Logger
	hashCost int
}

// WithLogger sets the logger for the application
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *appConfig) {
		cfg.logger = logger
	}
}

// WithHashCost overrides the bcrypt cost used for new passwords
func WithHashCost(cost int) Option {
	return func(cfg *appConfig) {
		cfg.hashCost = cost
	}
}
