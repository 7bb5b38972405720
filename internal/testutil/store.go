// Package testutil builds real stores for tests: a sqlite database, the
// service layer, a daemon on a temporary socket and clients for it.
package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tienda/internal/app"
	"github.com/thenoetrevino/tienda/internal/daemon"
	"github.com/thenoetrevino/tienda/internal/database"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/session"
)

// GetTestSocketPath generates a unique temporary socket path for testing.
// The socket is guaranteed to not exist and will be cleaned up by test cleanup.
func GetTestSocketPath(t *testing.T) string {
	t.Helper()

	socketPath := filepath.Join(t.TempDir(), "test-tienda.sock")

	t.Cleanup(func() {
		if _, err := os.Stat(socketPath); err == nil {
			_ = os.Remove(socketPath)
		}
	})

	return socketPath
}

// SetupTestApp opens a fresh database in a temp dir and builds the
// services over it, with the cheapest bcrypt cost
func SetupTestApp(t *testing.T) *app.App {
	t.Helper()

	db, err := database.InitDB(context.Background(), filepath.Join(t.TempDir(), "store.db"))
	if err != nil {
		t.Fatalf("Failed to initialize test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Logf("Warning: failed to close test database: %v", err)
		}
	})

	return app.New(database.NewRepository(db), app.WithHashCost(bcrypt.MinCost))
}

// SetupTestDaemon serves a on a temporary socket until the test ends.
// Returns the server and socket path. Cleanup is automatic via t.Cleanup().
func SetupTestDaemon(t *testing.T, a *app.App) (*daemon.Server, string) {
	t.Helper()

	socketPath := GetTestSocketPath(t)
	handler := daemon.NewStoreHandler(a.ReviewService, a.UserService, a.ProductService)

	server, err := daemon.NewServer(daemon.Config{SocketPath: socketPath}, handler)
	if err != nil {
		t.Fatalf("Failed to create test daemon: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := server.Start(ctx); err != nil {
			t.Logf("Warning: daemon stopped with error: %v", err)
		}
	}()

	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(5 * time.Second):
			t.Logf("Warning: daemon did not stop within 5s")
		}
	})

	return server, socketPath
}

// NewTestClient connects a dispatch client to the daemon at socketPath,
// retrying until the daemon accepts
func NewTestClient(t *testing.T, socketPath string) *dispatch.Client {
	t.Helper()

	client := dispatch.NewClient(socketPath)
	deadline := time.Now().Add(5 * time.Second)
	for {
		err := client.Connect(context.Background())
		if err == nil {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("Failed to connect to test daemon: %v", err)
		}
		time.Sleep(20 * time.Millisecond)
	}

	t.Cleanup(func() { _ = client.Close() })
	return client
}

// NewTestSession opens a session file in a temp dir, signed in as u when
// u is not nil
func NewTestSession(t *testing.T, u *models.User) *session.Store {
	t.Helper()

	sess, err := session.Open(filepath.Join(t.TempDir(), "session.yaml"))
	if err != nil {
		t.Fatalf("Failed to open test session: %v", err)
	}
	if u != nil {
		if err := sess.SignIn(u); err != nil {
			t.Fatalf("Failed to sign in test user: %v", err)
		}
	}
	return sess
}

// SeededStore seeds a test app, serves it and returns a connected client
// together with what was seeded
func SeededStore(t *testing.T) (*dispatch.Client, *app.SeedResult) {
	t.Helper()

	a := SetupTestApp(t)
	res, err := a.Seed(context.Background())
	if err != nil {
		t.Fatalf("Failed to seed test store: %v", err)
	}

	_, socketPath := SetupTestDaemon(t, a)
	return NewTestClient(t, socketPath), res
}
