package launcher

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/logging"
	"github.com/thenoetrevino/tienda/internal/session"
	"github.com/thenoetrevino/tienda/internal/tui"
)

// Launch starts the TUI on the page or form selected by opts. Unlike the
// headless commands it needs the daemon; an unreachable daemon is returned
// as a *dispatch.DaemonError before the terminal is taken over.
func Launch(opts tui.Options) error {
	// Initialize logging to file before anything else
	logCloser, err := logging.Init()
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to close log file: %v\n", err)
		}
	}()

	// Create root context with signal handling for graceful shutdown
	ctx, cancel := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	sessionPath, err := session.DefaultPath()
	if err != nil {
		return err
	}
	sess, err := session.Open(sessionPath)
	if err != nil {
		return err
	}

	client := dispatch.NewClient(cfg.SocketPath)
	if err := client.Connect(ctx); err != nil {
		daemonErr := dispatch.ClassifyDaemonError(err)
		slog.Warn("failed to connect to daemon", "message", daemonErr.Message, "hint", daemonErr.Hint)
		return daemonErr
	}

	// Cleanup daemon connection on exit
	defer func() {
		if err := client.Close(); err != nil {
			slog.Error("error closing store client", "error", err)
		}
	}()

	slog.Info("tui starting",
		"product_id", opts.ProductID,
		"review_id", opts.ReviewID,
		"signup", opts.Signup,
	)

	p := tea.NewProgram(tui.New(ctx, client, sess, cfg, opts), tea.WithContext(ctx))

	// goroutine to monitor cancellation
	errChan := make(chan error, 1)
	go func() {
		_, err := p.Run()
		errChan <- err
	}()

	// Wait for program completion or cancellation
	select {
	case err := <-errChan:
		if err != nil && ctx.Err() == nil {
			return fmt.Errorf("error running program: %w", err)
		}
	case <-ctx.Done():
		slog.Info("shutdown signal received, cleaning up")
		// the program restores the terminal once its context is done
		<-errChan
	}

	return nil
}
