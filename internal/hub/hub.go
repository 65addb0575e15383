// Package hub fans scheduler events out to live observer connections.
// Broadcast is fire-and-forget: a connection that cannot take a message
// is dropped from the registry, never waited on.
package hub

import (
	"log/slog"
	"sync"
	"time"

	"github.com/oddsboard/oddsboard/internal/cache"
)

// Sender is one registered observer connection. A send either delivers
// the event or returns an error; the hub treats any error as fatal for
// that connection.
type Sender interface {
	SendEvent(Event) error
}

// Hub is the registry of live observer connections. Connections are
// created and destroyed by the transport layer; the hub only holds
// handles.
type Hub struct {
	mu    sync.Mutex
	conns map[Sender]struct{}
	cache *cache.Cache
}

// New returns a hub that serves late joiners the current snapshot from c.
func New(c *cache.Cache) *Hub {
	return &Hub{
		conns: make(map[Sender]struct{}),
		cache: c,
	}
}

// Register adds a connection and immediately sends it the current
// snapshot so it does not wait for the next poll. A connection whose
// greeting fails is not registered.
func (h *Hub) Register(s Sender) error {
	// The lock is held across the greeting so a broadcast cannot slip
	// between the snapshot read and the registry insert; the joining
	// connection sees either the greeting snapshot or every update
	// after it, never a gap.
	h.mu.Lock()
	defer h.mu.Unlock()

	snap := h.cache.Read()
	n := len(snap.Games)
	evt := Event{
		Type:      EventConnectionEstablished,
		Timestamp: time.Now(),
		GameCount: &n,
		Games:     snap.Games,
	}
	if !snap.LastUpdated.IsZero() {
		t := snap.LastUpdated
		evt.LastUpdated = &t
	}
	if err := s.SendEvent(evt); err != nil {
		return err
	}

	h.conns[s] = struct{}{}
	slog.Info("Observer connected", "total", len(h.conns))
	return nil
}

// Unregister removes a connection. Safe to call for connections that
// were already dropped.
func (h *Hub) Unregister(s Sender) {
	h.mu.Lock()
	_, ok := h.conns[s]
	delete(h.conns, s)
	total := len(h.conns)
	h.mu.Unlock()
	if ok {
		slog.Info("Observer disconnected", "total", total)
	}
}

// Broadcast sends an event to every registered connection. Sends are
// independently fallible; failed connections are collected during the
// sweep and removed afterwards, so one dead observer never blocks the
// rest.
func (h *Hub) Broadcast(evt Event) {
	h.mu.Lock()
	conns := make([]Sender, 0, len(h.conns))
	for s := range h.conns {
		conns = append(conns, s)
	}
	h.mu.Unlock()

	var failed []Sender
	for _, s := range conns {
		if err := s.SendEvent(evt); err != nil {
			failed = append(failed, s)
		}
	}

	for _, s := range failed {
		h.Unregister(s)
	}
	if len(failed) > 0 {
		slog.Warn("Dropped unresponsive observers", "count", len(failed))
	}
}

// Count returns the number of registered connections.
func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}
