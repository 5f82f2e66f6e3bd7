// Package projection turns the record store into live queries: every
// subscription re-runs its query after a committed mutation touches one of
// its tables and emits the result when it differs from the last emission.
package projection

import (
	"sync"

	"photovault/internal/pv"
)

// Hub fans table change notifications out to subscriptions.
// It implements pv.ChangeNotifier and never blocks the notifying writer.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscriber
}

type subscriber struct {
	tables map[pv.Table]bool
	kick   chan struct{} // one slot: pending re-runs collapse into one
}

// NewHub creates a hub without subscriptions.
func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscriber)}
}

// Notify wakes every subscription watching any of tables.
func (h *Hub) Notify(tables ...pv.Table) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.subs {
		for _, t := range tables {
			if sub.tables[t] {
				select {
				case sub.kick <- struct{}{}:
				default:
				}
				break
			}
		}
	}
}

func (h *Hub) register(tables []pv.Table) (int, <-chan struct{}) {
	h.mu.Lock()
	defer h.mu.Unlock()
	sub := &subscriber{tables: make(map[pv.Table]bool), kick: make(chan struct{}, 1)}
	for _, t := range tables {
		sub.tables[t] = true
	}
	h.nextID++
	h.subs[h.nextID] = sub
	return h.nextID, sub.kick
}

func (h *Hub) unregister(id int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.subs, id)
}

// Subscribers returns the number of open subscriptions.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

var _ pv.ChangeNotifier = (*Hub)(nil)
