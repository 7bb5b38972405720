package daemon

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// Config holds the daemon's tunables
type Config struct {
	SocketPath string

	// RateLimit is requests per second allowed on one connection; Burst is
	// how many may arrive at once. RateLimit <= 0 disables limiting.
	RateLimit float64
	Burst     int

	// RequestTimeout bounds a single handler call
	RequestTimeout time.Duration

	// ClientBufferSize is the per-connection response queue length
	ClientBufferSize int
}

// client represents a connected client to the daemon
type client struct {
	conn    net.Conn
	send    chan dispatch.Message
	limiter *rate.Limiter
	done    chan struct{}

	closeOnce sync.Once
	inflight  sync.WaitGroup
}

func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		if err := c.conn.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
			slog.Error("error closing client connection", "error", err)
		}
	})
}

// Server is the store daemon. It answers requests from any number of
// clients over a unix socket.
type Server struct {
	cfg          Config
	listener     net.Listener
	handler      Handler
	clients      map[*client]bool
	mu           sync.RWMutex
	ctx          context.Context
	cancel       context.CancelFunc
	metrics      *Metrics
	shutdownOnce sync.Once
}

// NewServer creates a new daemon server listening on cfg.SocketPath
func NewServer(cfg Config, handler Handler) (*Server, error) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.ClientBufferSize <= 0 {
		cfg.ClientBufferSize = 16
	}
	if cfg.Burst <= 0 {
		cfg.Burst = 1
	}

	// Ensure the directory exists
	if dir := filepath.Dir(cfg.SocketPath); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("failed to create socket directory: %w", err)
		}
	}

	// Remove stale socket file if it exists
	if _, err := os.Stat(cfg.SocketPath); err == nil {
		if err := os.Remove(cfg.SocketPath); err != nil {
			return nil, fmt.Errorf("failed to remove stale socket: %w", err)
		}
	}

	lc := net.ListenConfig{}
	listener, err := lc.Listen(context.Background(), "unix", cfg.SocketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create socket listener: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Server{
		cfg:      cfg,
		listener: listener,
		handler:  handler,
		clients:  make(map[*client]bool),
		ctx:      ctx,
		cancel:   cancel,
		metrics:  NewMetrics(),
	}, nil
}

// Metrics exposes the live counters
func (s *Server) Metrics() *Metrics {
	return s.metrics
}

// Start runs the daemon until ctx is cancelled or Shutdown is called
func (s *Server) Start(ctx context.Context) error {
	slog.Info("daemon starting", "socket", s.cfg.SocketPath, "rate_limit", s.cfg.RateLimit, "burst", s.cfg.Burst)

	// Cancels when either the daemon context or caller context is done
	combinedCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		<-s.ctx.Done()
		cancel()
	}()

	acceptErr := make(chan error, 1)
	go func() {
		acceptErr <- s.acceptLoop(combinedCtx)
	}()

	select {
	case <-combinedCtx.Done():
		slog.Info("daemon context cancelled, shutting down")
	case err := <-acceptErr:
		if err != nil {
			slog.Error("accept loop error", "error", err)
		}
	}

	return s.Shutdown()
}

// acceptLoop accepts incoming client connections
func (s *Server) acceptLoop(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		// Set a deadline so we can check for context cancellation
		if err := s.listener.(*net.UnixListener).SetDeadline(time.Now().Add(1 * time.Second)); err != nil {
			slog.Warn("error setting listener deadline", "error", err)
		}

		conn, err := s.listener.Accept()
		if err != nil {
			var netErr net.Error
			if errors.As(err, &netErr) && netErr.Timeout() {
				continue
			}
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("accept error: %w", err)
		}

		c := &client{
			conn:    conn,
			send:    make(chan dispatch.Message, s.cfg.ClientBufferSize),
			limiter: s.newLimiter(),
			done:    make(chan struct{}),
		}

		s.mu.Lock()
		s.clients[c] = true
		s.mu.Unlock()
		s.updateClientCount()

		slog.Debug("client connected", "clients", s.getClientCount())

		go s.handleClient(ctx, c)
		go s.clientWriter(c)
	}
}

func (s *Server) newLimiter() *rate.Limiter {
	if s.cfg.RateLimit <= 0 {
		return rate.NewLimiter(rate.Inf, 0)
	}
	return rate.NewLimiter(rate.Limit(s.cfg.RateLimit), s.cfg.Burst)
}

// handleClient reads requests from a connected client. Each request is
// answered on its own goroutine so a slow call does not hold up the rest.
func (s *Server) handleClient(ctx context.Context, c *client) {
	defer func() {
		c.inflight.Wait()
		s.removeClient(c)
		slog.Debug("client disconnected", "clients", s.getClientCount())
	}()

	decoder := json.NewDecoder(c.conn)

	for {
		var msg dispatch.Message
		if err := decoder.Decode(&msg); err != nil {
			return
		}

		if msg.Version != 0 && msg.Version != dispatch.ProtocolVersion {
			slog.Warn("protocol version mismatch", "got", msg.Version, "want", dispatch.ProtocolVersion)
		}

		if msg.Type != "request" || msg.Request == nil {
			continue
		}
		req := *msg.Request

		if !c.limiter.Allow() {
			s.metrics.IncRequestsLimited()
			slog.Warn("request rate limited", "kind", req.Kind)
			s.respond(c, dispatch.Response{
				ID:      req.ID,
				Outcome: serverFailure(dispatch.CodeRateLimited, msgRateLimited),
			})
			continue
		}

		c.inflight.Add(1)
		go func() {
			defer c.inflight.Done()
			s.respond(c, s.serve(ctx, req))
		}()
	}
}

// serve answers one request, handling the daemon's own kinds directly
func (s *Server) serve(ctx context.Context, req dispatch.Request) dispatch.Response {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RequestTimeout)
	defer cancel()

	start := time.Now()

	var resp dispatch.Response
	if req.Kind == dispatch.KindStats {
		stats := s.metrics.GetSnapshot()
		resp = dispatch.Response{ID: req.ID, Stats: &stats}
	} else {
		resp = s.handler.Handle(ctx, req)
		resp.ID = req.ID
	}

	s.metrics.IncRequestsHandled()
	if !resp.Outcome.OK() {
		s.metrics.IncRequestsFailed()
	}

	slog.Debug("request served", "kind", req.Kind, "ok", resp.Outcome.OK(), "took", time.Since(start))
	return resp
}

// respond queues resp for the writer; it gives up once the client is gone
func (s *Server) respond(c *client, resp dispatch.Response) {
	msg := dispatch.Message{
		Version:  dispatch.ProtocolVersion,
		Type:     "response",
		Response: &resp,
	}
	select {
	case c.send <- msg:
	case <-c.done:
	}
}

// clientWriter sends messages to a client
func (s *Server) clientWriter(c *client) {
	encoder := json.NewEncoder(c.conn)

	for {
		select {
		case <-c.done:
			return
		case msg := <-c.send:
			if err := encoder.Encode(msg); err != nil {
				c.close()
				return
			}
		}
	}
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown() error {
	s.shutdownOnce.Do(func() {
		slog.Info("shutting down daemon")

		s.cancel()

		if s.listener != nil {
			if err := s.listener.Close(); err != nil && !errors.Is(err, net.ErrClosed) {
				slog.Error("error closing listener", "error", err)
			}
		}

		s.mu.Lock()
		for c := range s.clients {
			c.close()
		}
		s.clients = make(map[*client]bool)
		s.mu.Unlock()
		s.updateClientCount()

		if err := os.Remove(s.cfg.SocketPath); err != nil && !os.IsNotExist(err) {
			slog.Warn("failed to remove socket file", "error", err)
		}
	})

	return nil
}

// Helper methods

func (s *Server) getClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

func (s *Server) updateClientCount() {
	s.metrics.SetConnectedClients(int32(s.getClientCount()))
}

// removeClient safely removes a client from the server
func (s *Server) removeClient(c *client) {
	s.mu.Lock()
	delete(s.clients, c)
	s.mu.Unlock()

	c.close()
	s.updateClientCount()
}
