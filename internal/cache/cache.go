// Package cache holds the single authoritative in-memory snapshot of
// the board. The scheduler is the only writer; everything else reads.
package cache

import (
	"sync"
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Snapshot is a consistent view of the latest known games plus fetch
// bookkeeping. Readers always get either the prior or the new snapshot
// in full, never a torn one.
type Snapshot struct {
	Games       []models.Game
	LastUpdated time.Time
	FetchCount  int
	IsFetching  bool
	LastError   string
}

// Cache guards the snapshot behind a short critical section.
type Cache struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// New returns an empty cache.
func New() *Cache {
	return &Cache{}
}

// Replace swaps in a new game list wholesale, bumps the fetch counter
// and clears the last error. Invoked solely by the polling scheduler on
// a successful fetch.
func (c *Cache) Replace(games []models.Game, at time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.Games = games
	c.snapshot.LastUpdated = at
	c.snapshot.FetchCount++
	c.snapshot.LastError = ""
}

// SetError records a fetch failure without touching the cached games.
func (c *Cache) SetError(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.LastError = msg
}

// SetFetching flips the in-flight flag for the health surface. The flag
// is informational only; overlap prevention lives in the scheduler.
func (c *Cache) SetFetching(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot.IsFetching = v
}

// Read returns a copy of the current snapshot. The game slice is copied
// so callers can hold it across lock boundaries.
func (c *Cache) Read() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	snap := c.snapshot
	snap.Games = make([]models.Game, len(c.snapshot.Games))
	copy(snap.Games, c.snapshot.Games)
	return snap
}

// Game looks up a game in the current snapshot by id.
func (c *Cache) Game(gameID string) (models.Game, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, g := range c.snapshot.Games {
		if g.GameID == gameID {
			return g, true
		}
	}
	return models.Game{}, false
}
