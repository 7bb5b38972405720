package tui

import (
	"slices"
	"sync"
)

// reloadQueue collects product reload requests raised while completing a
// submission. Update drains it into load commands, so enqueueing never blocks.
type reloadQueue struct {
	mu  sync.Mutex
	ids []int
}

// ReloadProduct implements forms.Refresher
func (q *reloadQueue) ReloadProduct(productID int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if !slices.Contains(q.ids, productID) {
		q.ids = append(q.ids, productID)
	}
}

func (q *reloadQueue) drain() []int {
	q.mu.Lock()
	defer q.mu.Unlock()
	ids := q.ids
	q.ids = nil
	return ids
}
