package daemon

import (
	"context"
	"encoding/json"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/thenoetrevino/tienda/internal/database"
	"github.com/thenoetrevino/tienda/internal/dispatch"
	"github.com/thenoetrevino/tienda/internal/models"
	"github.com/thenoetrevino/tienda/internal/services/product"
	"github.com/thenoetrevino/tienda/internal/services/review"
	"github.com/thenoetrevino/tienda/internal/services/user"
)

// ============================================================================
// Test Helpers
// ============================================================================

type storeFixture struct {
	handler *StoreHandler
	author  *models.User
	other   *models.User
	product *models.Product
	review  *models.Review
}

func newStoreFixture(t *testing.T) *storeFixture {
	t.Helper()
	ctx := context.Background()

	db, err := database.InitDB(ctx, filepath.Join(t.TempDir(), "store.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := database.NewRepository(db)
	users := user.NewService(repo, user.WithHashCost(bcrypt.MinCost))
	reviews := review.NewService(repo)
	products := product.NewService(repo)

	author, err := users.Signup(ctx, user.SignupRequest{FirstName: "Ada", LastName: "L", Email: "ada@example.com", Username: "ada", Password: "engine1"})
	require.NoError(t, err)
	other, err := users.Signup(ctx, user.SignupRequest{FirstName: "Bob", LastName: "B", Email: "bob@example.com", Username: "bob", Password: "builder"})
	require.NoError(t, err)

	p, err := products.CreateProduct(ctx, product.CreateProductRequest{Name: "Kettle", Price: 20, OwnerID: other.ID})
	require.NoError(t, err)
	rv, err := reviews.CreateReview(ctx, review.CreateReviewRequest{UserID: author.ID, ProductID: p.ID, Body: "Boils fast and quietly", Rating: 4})
	require.NoError(t, err)

	return &storeFixture{
		handler: NewStoreHandler(reviews, users, products),
		author:  author,
		other:   other,
		product: p,
		review:  rv,
	}
}

func setupTestDaemon(t *testing.T, cfg Config, handler Handler) (*Server, string) {
	t.Helper()
	cfg.SocketPath = filepath.Join(t.TempDir(), "test-tienda.sock")

	server, err := NewServer(cfg, handler)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = server.Shutdown()
	})

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	go func() { _ = server.Start(ctx) }()

	return server, cfg.SocketPath
}

func newTestClient(t *testing.T, socketPath string) *dispatch.Client {
	t.Helper()
	c := dispatch.NewClient(socketPath)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

// ============================================================================
// Tests
// ============================================================================

func TestNewServer_StaleSocketCleanup(t *testing.T) {
	socketPath := filepath.Join(t.TempDir(), "stale.sock")
	require.NoError(t, os.WriteFile(socketPath, []byte("stale"), 0o600))

	server, err := NewServer(Config{SocketPath: socketPath}, &StoreHandler{})
	require.NoError(t, err)
	require.NoError(t, server.Shutdown())

	_, err = os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err))
}

func TestReviewEdit_EndToEnd(t *testing.T) {
	f := newStoreFixture(t)
	_, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)
	ctx := context.Background()

	outcome, err := client.SubmitEdit(ctx, dispatch.ReviewPayload{
		Body:      "Boils fast, lid is flimsy",
		Rating:    3,
		ProductID: f.product.ID,
		UserID:    f.author.ID,
	}, f.review.ID)
	require.NoError(t, err)
	assert.True(t, outcome.OK(), "errors: %v", outcome.Errors)

	detail, err := client.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	require.NotNil(t, detail.ReviewByUser(f.author.ID))
	assert.Equal(t, "Boils fast, lid is flimsy", detail.ReviewByUser(f.author.ID).Body)
	assert.InDelta(t, 3.0, detail.AverageRating, 0.001)
}

func TestFavorite_EndToEnd(t *testing.T) {
	f := newStoreFixture(t)
	_, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)
	ctx := context.Background()

	outcome, err := client.SetFavorite(ctx, f.product.ID, dispatch.FavoritePayload{UserID: f.author.ID, Favorite: true})
	require.NoError(t, err)
	assert.True(t, outcome.OK(), "errors: %v", outcome.Errors)

	detail, err := client.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, detail.FavoriteCount)
	assert.True(t, detail.FavoritedBy(f.author.ID))

	outcome, err = client.SetFavorite(ctx, f.product.ID, dispatch.FavoritePayload{UserID: f.author.ID, Favorite: false})
	require.NoError(t, err)
	assert.True(t, outcome.OK())

	detail, err = client.GetProduct(ctx, f.product.ID)
	require.NoError(t, err)
	assert.Zero(t, detail.FavoriteCount)

	outcome, err = client.SetFavorite(ctx, f.product.ID, dispatch.FavoritePayload{Favorite: true})
	require.NoError(t, err)
	assert.Equal(t, dispatch.CodeUnauthorized, outcome.Code)
	assert.Equal(t, msgFavoriteAuth, outcome.Errors[dispatch.ErrorKeyServer])
}

func TestReviewEdit_Rejections(t *testing.T) {
	f := newStoreFixture(t)
	_, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)
	ctx := context.Background()

	t.Run("not the author", func(t *testing.T) {
		outcome, err := client.SubmitEdit(ctx, dispatch.ReviewPayload{
			Body: "Trying to edit someone else's", Rating: 1, ProductID: f.product.ID, UserID: f.other.ID,
		}, f.review.ID)
		require.NoError(t, err)
		assert.False(t, outcome.OK())
		assert.Equal(t, dispatch.CodeUnauthorized, outcome.Code)
	})

	t.Run("bad rating", func(t *testing.T) {
		outcome, err := client.SubmitEdit(ctx, dispatch.ReviewPayload{
			Body: "Valid body text here", Rating: 9, ProductID: f.product.ID, UserID: f.author.ID,
		}, f.review.ID)
		require.NoError(t, err)
		assert.Equal(t, dispatch.CodeInvalid, outcome.Code)
		assert.Contains(t, outcome.Errors, "rating")
	})

	t.Run("missing review", func(t *testing.T) {
		_, err := client.GetReview(ctx, 999)
		assert.ErrorIs(t, err, dispatch.ErrNotFound)
	})
}

func TestSignupAndLogin_EndToEnd(t *testing.T) {
	f := newStoreFixture(t)
	_, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)
	ctx := context.Background()

	outcome, err := client.SubmitSignup(ctx, dispatch.SignupPayload{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Username: "grace", Password: "cobol60",
	})
	require.NoError(t, err)
	require.True(t, outcome.OK(), "errors: %v", outcome.Errors)
	require.NotNil(t, outcome.User)
	assert.Equal(t, "grace", outcome.User.Username)
	assert.Empty(t, outcome.User.PasswordHash)

	dup, err := client.SubmitSignup(ctx, dispatch.SignupPayload{
		FirstName: "Grace", LastName: "Hopper", Email: "grace@example.com", Username: "grace2", Password: "cobol60",
	})
	require.NoError(t, err)
	assert.Equal(t, user.MsgEmailTaken, dup.Errors[dispatch.ErrorKeyEmail])

	login, err := client.Login(ctx, dispatch.LoginPayload{Credential: "grace", Password: "cobol60"})
	require.NoError(t, err)
	require.True(t, login.OK())
	assert.Equal(t, outcome.User.ID, login.User.ID)

	bad, err := client.Login(ctx, dispatch.LoginPayload{Credential: "grace", Password: "nope"})
	require.NoError(t, err)
	assert.Equal(t, dispatch.CodeUnauthorized, bad.Code)
}

func TestStats(t *testing.T) {
	f := newStoreFixture(t)
	_, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)
	ctx := context.Background()

	_, err := client.GetReview(ctx, 999)
	require.Error(t, err)

	stats, err := client.Stats(ctx)
	require.NoError(t, err)
	// the stats request itself is counted after its snapshot is taken
	assert.EqualValues(t, 1, stats.RequestsHandled)
	assert.EqualValues(t, 1, stats.RequestsFailed)
	assert.EqualValues(t, 1, stats.ConnectedClients)
	assert.NotEmpty(t, stats.Uptime)
}

func TestRateLimit(t *testing.T) {
	f := newStoreFixture(t)
	server, socketPath := setupTestDaemon(t, Config{RateLimit: 0.001, Burst: 2}, f.handler)

	var conn net.Conn
	var err error
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		conn, err = (&net.Dialer{}).DialContext(context.Background(), "unix", socketPath)
		if err == nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	require.NoError(t, err)
	defer func() { _ = conn.Close() }()

	encoder := json.NewEncoder(conn)
	decoder := json.NewDecoder(conn)

	for i := range 3 {
		req := dispatch.Request{ID: string(rune('a' + i)), Kind: dispatch.KindProductGet, ProductID: f.product.ID}
		require.NoError(t, encoder.Encode(dispatch.Message{Version: dispatch.ProtocolVersion, Type: "request", Request: &req}))
	}

	codes := map[string]string{}
	for range 3 {
		var msg dispatch.Message
		require.NoError(t, decoder.Decode(&msg))
		require.NotNil(t, msg.Response)
		codes[msg.Response.ID] = msg.Response.Outcome.Code
	}

	assert.Equal(t, "", codes["a"])
	assert.Equal(t, "", codes["b"])
	assert.Equal(t, dispatch.CodeRateLimited, codes["c"])
	assert.EqualValues(t, 1, server.Metrics().GetSnapshot().RequestsLimited)
}

func TestShutdown_Idempotent(t *testing.T) {
	f := newStoreFixture(t)
	server, socketPath := setupTestDaemon(t, Config{}, f.handler)
	client := newTestClient(t, socketPath)

	_, err := client.Stats(context.Background())
	require.NoError(t, err)

	assert.NoError(t, server.Shutdown())
	assert.NoError(t, server.Shutdown())

	_, err = os.Stat(socketPath)
	assert.True(t, os.IsNotExist(err))
}
