package daemon

import (
	"sync/atomic"
	"time"

	"github.com/thenoetrevino/tienda/internal/dispatch"
)

// Metrics tracks daemon statistics using atomic operations for thread-safety
type Metrics struct {
	RequestsHandled  atomic.Int64
	RequestsFailed   atomic.Int64
	RequestsLimited  atomic.Int64
	ConnectedClients atomic.Int32
	StartTime        time.Time
}

// NewMetrics creates a new Metrics instance
func NewMetrics() *Metrics {
	return &Metrics{
		StartTime: time.Now(),
	}
}

// IncRequestsHandled increments the answered requests counter
func (m *Metrics) IncRequestsHandled() {
	m.RequestsHandled.Add(1)
}

// IncRequestsFailed increments the counter of requests answered with errors
func (m *Metrics) IncRequestsFailed() {
	m.RequestsFailed.Add(1)
}

// IncRequestsLimited increments the counter of requests refused by the rate limiter
func (m *Metrics) IncRequestsLimited() {
	m.RequestsLimited.Add(1)
}

// SetConnectedClients sets the current connected clients count
func (m *Metrics) SetConnectedClients(count int32) {
	m.ConnectedClients.Store(count)
}

// GetSnapshot returns a snapshot of current metrics
func (m *Metrics) GetSnapshot() dispatch.Stats {
	return dispatch.Stats{
		RequestsHandled:  m.RequestsHandled.Load(),
		RequestsFailed:   m.RequestsFailed.Load(),
		RequestsLimited:  m.RequestsLimited.Load(),
		ConnectedClients: m.ConnectedClients.Load(),
		StartTime:        m.StartTime,
		Uptime:           time.Since(m.StartTime).Round(time.Second).String(),
	}
}
