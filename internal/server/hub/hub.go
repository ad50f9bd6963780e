// Package hub fans authoritative snapshots out to connected subscribers.
package hub

import (
	"sync"

	"github.com/dmitrijs2005/influence/internal/model"
)

// Subscription receives snapshots on C until it is cancelled. C holds at
// most one snapshot: a newer one replaces an unread older one, so a slow
// reader only ever sees the latest state.
type Subscription struct {
	C <-chan []model.Profile

	ch  chan []model.Profile
	hub *Hub
}

// Cancel detaches the subscription and closes C. Safe to call twice.
func (s *Subscription) Cancel() {
	s.hub.unsubscribe(s)
}

// Hub keeps the last published snapshot and the set of live subscriptions.
type Hub struct {
	mu          sync.Mutex
	latest      []model.Profile
	subscribers map[*Subscription]struct{}
}

func New() *Hub {
	return &Hub{subscribers: make(map[*Subscription]struct{})}
}

// Subscribe registers a subscriber. If a snapshot has already been
// published it is queued immediately.
func (h *Hub) Subscribe() *Subscription {
	ch := make(chan []model.Profile, 1)
	s := &Subscription{C: ch, ch: ch, hub: h}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.subscribers[s] = struct{}{}
	if h.latest != nil {
		ch <- model.CloneAll(h.latest)
	}
	return s
}

// Publish records snapshot as the latest state and offers a copy to every
// subscriber. It never blocks on a reader.
func (h *Hub) Publish(snapshot []model.Profile) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.latest = model.CloneAll(snapshot)
	for s := range h.subscribers {
		offer(s.ch, model.CloneAll(snapshot))
	}
}

// Len reports the number of live subscriptions.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close cancels every subscription.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for s := range h.subscribers {
		delete(h.subscribers, s)
		close(s.ch)
	}
}

func (h *Hub) unsubscribe(s *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.subscribers[s]; !ok {
		return
	}
	delete(h.subscribers, s)
	close(s.ch)
}

// offer is only called with h.mu held, so nobody else sends on ch and the
// drain-then-send cannot block.
func offer(ch chan []model.Profile, snapshot []model.Profile) {
	select {
	case <-ch:
	default:
	}
	ch <- snapshot
}
