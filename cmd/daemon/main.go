package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/logging"
)

func main() {
	logCloser, err := logging.Init()
	if err != nil {
		slog.Error("failed to initialize logging", "error", err)
		os.Exit(1)
	}
	defer func() { _ = logCloser.Close() }()

	// Set up signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	if err := launcher.RunDaemon(ctx, cfg); err != nil {
		slog.Error("daemon error", "error", err)
		cancel()
		os.Exit(1)
	}
}
