package cli

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/session"
)

// CLI represents the CLI application context: a connected store client,
// the session file and the loaded config.
type CLI struct {
	Config  *config.Config
	Client  *dispatch.Client
	Session *session.Store
}

// NewCLI loads config and the session, then connects to the store daemon.
// The returned error is a *dispatch.DaemonError when the daemon is unreachable.
func NewCLI(ctx context.Context) (*CLI, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	sess, err := OpenSession()
	if err != nil {
		return nil, err
	}

	client := dispatch.NewClient(cfg.SocketPath)
	if err := client.Connect(ctx); err != nil {
		return nil, dispatch.ClassifyDaemonError(err)
	}

	return &CLI{
		Config:  cfg,
		Client:  client,
		Session: sess,
	}, nil
}

// OpenSession opens the session file at its default location
func OpenSession() (*session.Store, error) {
	path, err := session.DefaultPath()
	if err != nil {
		return nil, err
	}
	return session.Open(path)
}

// Close cleans up CLI resources
func (c *CLI) Close() error {
	if c.Client == nil {
		return nil
	}
	if err := c.Client.Close(); err != nil {
		slog.Error("error closing store client", "error", err)
		return err
	}
	return nil
}
