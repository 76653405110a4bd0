// Package stream fans game notifications out to live subscribers.
package stream

import (
	"sync"

	"github.com/terra-clan/spacegom-engine/internal/models"
)

// BufferSize is the per-subscriber channel capacity.
const BufferSize = 64

// Hub delivers notifications to subscribers of one game. Publishing never
// blocks: a subscriber whose buffer is full misses the notification.
type Hub struct {
	mu   sync.RWMutex
	subs map[string]map[chan models.Notification]struct{}
}

// NewHub creates an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan models.Notification]struct{})}
}

// Subscribe returns a buffered channel receiving notifications for gameID.
func (h *Hub) Subscribe(gameID string) chan models.Notification {
	ch := make(chan models.Notification, BufferSize)

	h.mu.Lock()
	set, ok := h.subs[gameID]
	if !ok {
		set = make(map[chan models.Notification]struct{})
		h.subs[gameID] = set
	}
	set[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes a subscriber and closes its channel. It is a no-op for
// an unknown channel.
func (h *Hub) Unsubscribe(gameID string, ch chan models.Notification) {
	h.mu.Lock()
	defer h.mu.Unlock()

	set, ok := h.subs[gameID]
	if !ok {
		return
	}
	if _, ok := set[ch]; !ok {
		return
	}
	delete(set, ch)
	if len(set) == 0 {
		delete(h.subs, gameID)
	}
	close(ch)
}

// Publish sends n to every subscriber of n.GameID and returns how many
// received it.
func (h *Hub) Publish(n models.Notification) int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	delivered := 0
	for ch := range h.subs[n.GameID] {
		select {
		case ch <- n:
			delivered++
		default:
			// subscriber is behind; drop to avoid blocking the caller
		}
	}
	return delivered
}

// Subscribers returns the number of live subscribers for gameID.
func (h *Hub) Subscribers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[gameID])
}

// CloseGame closes every subscription to gameID, used when a game is deleted.
func (h *Hub) CloseGame(gameID string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for ch := range h.subs[gameID] {
		close(ch)
	}
	delete(h.subs, gameID)
}
