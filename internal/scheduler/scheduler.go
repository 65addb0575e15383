// Package scheduler owns the refresh cadence of the board. Exactly one
// background goroutine polls the retrieval layer; overlap between the
// timer and manual triggers is ruled out by a fetch mutex, not a flag.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/oddsboard/oddsboard/internal/cache"
	"github.com/oddsboard/oddsboard/internal/hub"
	"github.com/oddsboard/oddsboard/internal/normalizer"
	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Fetcher is the retrieval collaborator: one attempt yields raw board
// cards or a recoverable error.
type Fetcher interface {
	Fetch(ctx context.Context) ([]normalizer.Card, error)
}

// Store persists successful snapshots. May be backed by nothing at all
// when history is disabled.
type Store interface {
	SaveGames(ctx context.Context, games []models.Game) error
}

// Broadcaster pushes events to observers.
type Broadcaster interface {
	Broadcast(hub.Event)
}

// Notifier receives out-of-band alerts about fetch outcomes. Optional.
type Notifier interface {
	FetchFailed(errMsg string)
	SnapshotReplaced(prev, curr []models.Game)
}

// Scheduler runs the poll loop.
type Scheduler struct {
	fetcher  Fetcher
	cache    *cache.Cache
	store    Store    // nil disables persistence
	hub      Broadcaster
	notifier Notifier // nil disables notifications
	interval time.Duration

	// fetchMu serializes fetch cycles between the loop and Trigger.
	fetchMu sync.Mutex

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// New assembles a scheduler. store and notifier may be nil.
func New(fetcher Fetcher, c *cache.Cache, store Store, broadcaster Broadcaster, notifier Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		fetcher:  fetcher,
		cache:    c,
		store:    store,
		hub:      broadcaster,
		notifier: notifier,
		interval: interval,
	}
}

// Start spawns the single polling goroutine: an immediate fetch, then
// one fetch per interval. Calling Start while running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		slog.Warn("Scheduler already running, ignoring Start")
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)
	slog.Info("Polling scheduler started", "interval", s.interval)
}

// Stop raises the stop signal and waits for the polling goroutine to
// exit, including any in-flight fetch's bookkeeping. Safe to call when
// not running.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	cancel := s.cancel
	done := s.done
	s.cancel = nil
	s.done = nil
	s.mu.Unlock()

	if cancel != nil {
		cancel()
		<-done
	}

	// A manual Trigger may still be mid-cycle on its own goroutine even
	// when the loop never ran; taking the fetch mutex waits out its
	// cache, persistence and broadcast bookkeeping.
	s.fetchMu.Lock()
	s.fetchMu.Unlock()

	if cancel != nil {
		slog.Info("Polling scheduler stopped")
	}
}

// Trigger performs one out-of-band fetch-and-broadcast cycle without
// disturbing the timer. It shares the fetch mutex with the loop, so a
// concurrent timer fetch simply runs first.
func (s *Scheduler) Trigger(ctx context.Context) {
	s.fetchAndBroadcast(ctx)
}

func (s *Scheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	s.fetchAndBroadcast(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.fetchAndBroadcast(ctx)
		}
	}
}

func (s *Scheduler) fetchAndBroadcast(ctx context.Context) {
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.cache.SetFetching(true)
	defer s.cache.SetFetching(false)

	cards, err := s.fetcher.Fetch(ctx)
	now := time.Now()

	if err != nil {
		if ctx.Err() != nil {
			// Shutdown raced the fetch; not a board failure.
			return
		}
		slog.Error("Fetch failed", "error", err)
		s.cache.SetError(err.Error())
		s.hub.Broadcast(hub.ErrorEvent(err.Error(), now))
		if s.notifier != nil {
			s.notifier.FetchFailed(err.Error())
		}
		return
	}

	games := normalizer.Games(cards, now)
	if len(games) == 0 {
		// Transient scrape miss: keep serving the previous snapshot
		// instead of flashing to an empty board.
		slog.Warn("Fetch produced no games, keeping previous snapshot", "cards", len(cards))
		return
	}

	prev := s.cache.Read().Games
	s.cache.Replace(games, now)

	if s.store != nil {
		if err := s.store.SaveGames(ctx, games); err != nil {
			slog.Error("Failed to persist snapshot", "error", err, "games", len(games))
		}
	}

	s.hub.Broadcast(hub.GamesUpdateEvent(games, now))
	if s.notifier != nil {
		s.notifier.SnapshotReplaced(prev, games)
	}
	slog.Info("Snapshot replaced", "games", len(games))
}
