package launcher

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/thenoetrevino/tienda/internal/app"
	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/daemon"
	"github.com/thenoetrevino/tienda/internal/database"
)

// OpenApp opens the store database and builds the service layer over it.
// The caller closes the returned db.
func OpenApp(ctx context.Context, cfg *config.Config) (*app.App, *sql.DB, error) {
	db, err := database.InitDB(ctx, cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return app.New(database.NewRepository(db)), db, nil
}

// RunDaemon serves the store on cfg.SocketPath until ctx is cancelled
func RunDaemon(ctx context.Context, cfg *config.Config) error {
	application, db, err := OpenApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database", "error", err)
		}
	}()

	handler := daemon.NewStoreHandler(
		application.ReviewService,
		application.UserService,
		application.ProductService,
	)

	server, err := daemon.NewServer(daemon.Config{
		SocketPath: cfg.SocketPath,
		RateLimit:  cfg.Daemon.RateLimit,
		Burst:      cfg.Daemon.Burst,
	}, handler)
	if err != nil {
		return fmt.Errorf("failed to create daemon: %w", err)
	}

	slog.Info("tienda daemon starting", "socket_path", cfg.SocketPath, "db_path", cfg.DBPath, "pid", os.Getpid())

	// Start the daemon (blocks until shutdown)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("daemon error: %w", err)
	}

	slog.Info("tienda daemon shutting down gracefully")
	return nil
}
