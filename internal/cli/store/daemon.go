package store

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/launcher"
	"github.com/thenoetrevino/tienda/internal/logging"
)

// DaemonCmd returns the daemon command
func DaemonCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Run the store daemon",
		Long: `Run the store in the foreground. The TUI and the other commands talk
to it over the unix socket configured as socket_path (default
~/.tienda/tienda.sock). Stop it with Ctrl+C or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: runDaemon,
	}
}

func runDaemon(cmd *cobra.Command, args []string) error {
	logCloser, err := logging.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
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
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "tienda daemon listening on %s (pid %d)\n", cfg.SocketPath, os.Getpid())
	return launcher.RunDaemon(ctx, cfg)
}
