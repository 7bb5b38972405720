package launcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thenoetrevino/tienda/internal/config"
	"github.com/thenoetrevino/tienda/internal/dispatch"
)

func testDaemonConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		SocketPath: filepath.Join(dir, "tienda.sock"),
		DBPath:     filepath.Join(dir, "store.db"),
		Daemon:     config.DaemonConfig{RateLimit: 100, Burst: 100},
	}
}

func TestOpenApp(t *testing.T) {
	cfg := testDaemonConfig(t)

	application, db, err := OpenApp(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	products, err := application.ProductService.ListProducts(context.Background())
	require.NoError(t, err)
	assert.Empty(t, products)

	_, err = os.Stat(cfg.DBPath)
	assert.NoError(t, err)
}

func TestRunDaemon_ServesUntilCancelled(t *testing.T) {
	cfg := testDaemonConfig(t)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- RunDaemon(ctx, cfg)
	}()

	client := dispatch.NewClient(cfg.SocketPath)
	require.Eventually(t, func() bool {
		return client.Connect(ctx) == nil
	}, 5*time.Second, 20*time.Millisecond)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.ConnectedClients)

	_, err = client.GetProduct(ctx, 42)
	assert.ErrorIs(t, err, dispatch.ErrNotFound)

	require.NoError(t, client.Close())
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("daemon did not stop after cancel")
	}
}
