package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/thenoetrevino/tienda/internal/models"
)

// Client is an asynchronous request/response connection to the store daemon.
// Requests are correlated by ID so several may be outstanding at once.
type Client struct {
	socketPath string

	mu      sync.Mutex
	conn    net.Conn
	encoder *json.Encoder
	closed  bool

	pendingMu sync.Mutex
	pending   map[string]chan Response

	// Reconnection configuration
	maxRetries int
	baseDelay  time.Duration

	ctx    context.Context
	cancel context.CancelFunc
}

// NewClient creates a client for the daemon at socketPath but does not dial.
// The first request connects lazily.
func NewClient(socketPath string) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		socketPath: socketPath,
		pending:    make(map[string]chan Response),
		maxRetries: 3,
		baseDelay:  200 * time.Millisecond,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// SocketPath returns the daemon socket this client talks to
func (c *Client) SocketPath() string {
	return c.socketPath
}

// Connect dials the daemon socket and starts the response reader.
// Calling Connect on a connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return ErrClientClosed
	}
	if c.conn != nil {
		return nil
	}

	dialer := net.Dialer{}
	conn, err := dialer.DialContext(ctx, "unix", c.socketPath)
	if err != nil {
		return fmt.Errorf("failed to dial daemon socket: %w", err)
	}

	c.conn = conn
	c.encoder = json.NewEncoder(conn)

	go c.readLoop(conn, json.NewDecoder(conn))

	return nil
}

// readLoop routes responses to their waiting callers until the connection
// drops. Every caller still waiting is then failed with ErrConnectionLost.
func (c *Client) readLoop(conn net.Conn, decoder *json.Decoder) {
	for {
		var msg Message
		if err := decoder.Decode(&msg); err != nil {
			if !isConnectionError(err) && c.ctx.Err() == nil {
				slog.Warn("daemon connection lost", "error", err)
			}
			c.dropConn(conn)
			c.failPending()
			return
		}

		if msg.Type != "response" || msg.Response == nil {
			continue
		}

		c.pendingMu.Lock()
		ch, ok := c.pending[msg.Response.ID]
		delete(c.pending, msg.Response.ID)
		c.pendingMu.Unlock()

		if !ok {
			slog.Debug("response for unknown request", "id", msg.Response.ID)
			continue
		}
		ch <- *msg.Response
	}
}

// dropConn forgets conn if it is still current so the next call redials
func (c *Client) dropConn(conn net.Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == conn {
		if err := conn.Close(); err != nil && !isConnectionError(err) {
			slog.Error("error closing connection", "error", err)
		}
		c.conn = nil
		c.encoder = nil
	}
}

func (c *Client) failPending() {
	c.pendingMu.Lock()
	defer c.pendingMu.Unlock()

	for id, ch := range c.pending {
		close(ch)
		delete(c.pending, id)
	}
}

// isConnectionError checks if an error is a network connection error
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, net.ErrClosed) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "broken pipe") ||
		strings.Contains(errStr, "connection reset") ||
		strings.Contains(errStr, "EOF")
}

// reconnect dials with exponential backoff until it succeeds, ctx ends, or
// maxRetries attempts have failed.
func (c *Client) reconnect(ctx context.Context) error {
	delay := c.baseDelay
	var err error

	for i := 0; i < c.maxRetries; i++ {
		if err = c.Connect(ctx); err == nil {
			if i > 0 {
				slog.Info("reconnected to daemon", "attempt", i+1)
			}
			return nil
		}
		if errors.Is(err, ErrClientClosed) {
			return err
		}

		slog.Debug("connection attempt failed", "attempt", i+1, "max", c.maxRetries, "retry_in", delay, "error", err)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.ctx.Done():
			return ErrClientClosed
		case <-time.After(delay):
		}
		delay *= 2 // 200ms, 400ms, 800ms
	}

	return err
}

// call sends req and waits for the matching response
func (c *Client) call(ctx context.Context, req Request) (Response, error) {
	if err := c.reconnect(ctx); err != nil {
		return Response{}, err
	}

	req.ID = uuid.NewString()
	ch := make(chan Response, 1)

	c.pendingMu.Lock()
	c.pending[req.ID] = ch
	c.pendingMu.Unlock()

	forget := func() {
		c.pendingMu.Lock()
		delete(c.pending, req.ID)
		c.pendingMu.Unlock()
	}

	if err := c.send(req); err != nil {
		forget()
		return Response{}, err
	}

	select {
	case resp, ok := <-ch:
		if !ok {
			return Response{}, ErrConnectionLost
		}
		return resp, nil
	case <-ctx.Done():
		forget()
		return Response{}, ctx.Err()
	case <-c.ctx.Done():
		forget()
		return Response{}, ErrClientClosed
	}
}

func (c *Client) send(req Request) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil {
		return ErrConnectionLost
	}

	// Set a short write deadline to detect dead connections
	if err := c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second)); err != nil {
		return fmt.Errorf("connection error: %w", err)
	}

	msg := Message{
		Version: ProtocolVersion,
		Type:    "request",
		Request: &req,
	}
	if err := c.encoder.Encode(msg); err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	return nil
}

// SubmitEdit asks the store to update a review
func (c *Client) SubmitEdit(ctx context.Context, review ReviewPayload, reviewID int) (Outcome, error) {
	resp, err := c.call(ctx, Request{
		Kind:     KindReviewEdit,
		ReviewID: reviewID,
		Review:   &review,
	})
	if err != nil {
		return Outcome{}, err
	}
	return resp.Outcome, nil
}

// SubmitSignup asks the store to create an account
func (c *Client) SubmitSignup(ctx context.Context, signup SignupPayload) (Outcome, error) {
	resp, err := c.call(ctx, Request{
		Kind:   KindSignup,
		Signup: &signup,
	})
	if err != nil {
		return Outcome{}, err
	}
	return resp.Outcome, nil
}

// Login checks credentials and returns the account on success
func (c *Client) Login(ctx context.Context, login LoginPayload) (Outcome, error) {
	resp, err := c.call(ctx, Request{
		Kind:  KindLogin,
		Login: &login,
	})
	if err != nil {
		return Outcome{}, err
	}
	return resp.Outcome, nil
}

// GetReview fetches one review
func (c *Client) GetReview(ctx context.Context, reviewID int) (*models.Review, error) {
	resp, err := c.call(ctx, Request{Kind: KindReviewGet, ReviewID: reviewID})
	if err != nil {
		return nil, err
	}
	if err := outcomeError(resp.Outcome); err != nil {
		return nil, err
	}
	return resp.Review, nil
}

// GetProduct fetches a product with its reviews and aggregates
func (c *Client) GetProduct(ctx context.Context, productID int) (*models.ProductDetail, error) {
	resp, err := c.call(ctx, Request{Kind: KindProductGet, ProductID: productID})
	if err != nil {
		return nil, err
	}
	if err := outcomeError(resp.Outcome); err != nil {
		return nil, err
	}
	return resp.Product, nil
}

// SetFavorite marks or unmarks a product for the user in fav
func (c *Client) SetFavorite(ctx context.Context, productID int, fav FavoritePayload) (Outcome, error) {
	resp, err := c.call(ctx, Request{
		Kind:      KindFavorite,
		ProductID: productID,
		Favorite:  &fav,
	})
	if err != nil {
		return Outcome{}, err
	}
	return resp.Outcome, nil
}

// Stats fetches the daemon's counters
func (c *Client) Stats(ctx context.Context) (*Stats, error) {
	resp, err := c.call(ctx, Request{Kind: KindStats})
	if err != nil {
		return nil, err
	}
	if err := outcomeError(resp.Outcome); err != nil {
		return nil, err
	}
	return resp.Stats, nil
}

// Close fails outstanding calls and closes the connection
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.encoder = nil
	c.mu.Unlock()

	c.cancel()

	if conn != nil {
		return conn.Close()
	}
	return nil
}
