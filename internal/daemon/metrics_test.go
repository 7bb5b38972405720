package daemon

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewMetrics(t *testing.T) {
	before := time.Now()
	m := NewMetrics()

	snap := m.GetSnapshot()
	assert.Zero(t, snap.RequestsHandled)
	assert.Zero(t, snap.RequestsFailed)
	assert.Zero(t, snap.RequestsLimited)
	assert.Zero(t, snap.ConnectedClients)
	assert.False(t, m.StartTime.Before(before))
}

func TestMetricsConcurrency(t *testing.T) {
	m := NewMetrics()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.IncRequestsHandled()
			m.IncRequestsFailed()
			m.IncRequestsLimited()
			_ = m.GetSnapshot()
		}()
	}
	wg.Wait()
	m.SetConnectedClients(3)

	snap := m.GetSnapshot()
	assert.EqualValues(t, 50, snap.RequestsHandled)
	assert.EqualValues(t, 50, snap.RequestsFailed)
	assert.EqualValues(t, 50, snap.RequestsLimited)
	assert.EqualValues(t, 3, snap.ConnectedClients)
}

func TestMetricsSnapshot_IsImmutable(t *testing.T) {
	m := NewMetrics()
	m.IncRequestsHandled()
	snap := m.GetSnapshot()

	m.IncRequestsHandled()
	assert.EqualValues(t, 1, snap.RequestsHandled)
	assert.EqualValues(t, 2, m.GetSnapshot().RequestsHandled)
}
