package hub

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oddsboard/oddsboard/internal/cache"
	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

type fakeSender struct {
	events []Event
	fail   bool
}

func (f *fakeSender) SendEvent(evt Event) error {
	if f.fail {
		return errors.New("connection gone")
	}
	f.events = append(f.events, evt)
	return nil
}

func TestRegisterSendsCurrentSnapshot(t *testing.T) {
	c := cache.New()
	c.Replace([]models.Game{{GameID: "KC_BUF_20250914"}}, time.Now())
	h := New(c)

	s := &fakeSender{}
	if err := h.Register(s); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if len(s.events) != 1 {
		t.Fatalf("got %d events on register, want 1", len(s.events))
	}
	evt := s.events[0]
	if evt.Type != EventConnectionEstablished {
		t.Errorf("event type = %q, want %q", evt.Type, EventConnectionEstablished)
	}
	if len(evt.Games) != 1 || evt.Games[0].GameID != "KC_BUF_20250914" {
		t.Errorf("greeting games = %+v, want current snapshot", evt.Games)
	}
	if h.Count() != 1 {
		t.Errorf("Count() = %d, want 1", h.Count())
	}
}

func TestRegisterFailedGreetingNotRegistered(t *testing.T) {
	h := New(cache.New())
	s := &fakeSender{fail: true}
	if err := h.Register(s); err == nil {
		t.Fatalf("Register() with failing sender returned nil error")
	}
	if h.Count() != 0 {
		t.Errorf("Count() = %d after failed greeting, want 0", h.Count())
	}
}

// gatedSender parks its first send (the greeting) until released, so a
// test can race a broadcast against an in-progress registration.
type gatedSender struct {
	entered chan struct{}
	release chan struct{}
	once    sync.Once

	mu     sync.Mutex
	events []Event
}

func (g *gatedSender) SendEvent(evt Event) error {
	g.once.Do(func() {
		close(g.entered)
		<-g.release
	})
	g.mu.Lock()
	defer g.mu.Unlock()
	g.events = append(g.events, evt)
	return nil
}

func (g *gatedSender) eventTypes() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	types := make([]string, len(g.events))
	for i, e := range g.events {
		types[i] = e.Type
	}
	return types
}

func TestBroadcastDuringRegisterReachesJoiningObserver(t *testing.T) {
	h := New(cache.New())
	s := &gatedSender{entered: make(chan struct{}), release: make(chan struct{})}

	regDone := make(chan error, 1)
	go func() { regDone <- h.Register(s) }()
	<-s.entered

	bcastDone := make(chan struct{})
	go func() {
		h.Broadcast(GamesUpdateEvent(nil, time.Now()))
		close(bcastDone)
	}()

	// The broadcast must wait for the registration to finish rather
	// than sweep a registry that does not yet hold the new connection.
	select {
	case <-bcastDone:
		t.Fatalf("broadcast completed while the greeting was still in flight")
	case <-time.After(50 * time.Millisecond):
	}

	close(s.release)
	if err := <-regDone; err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	select {
	case <-bcastDone:
	case <-time.After(2 * time.Second):
		t.Fatalf("broadcast never completed")
	}

	if got := s.eventTypes(); len(got) != 2 || got[0] != EventConnectionEstablished || got[1] != EventGamesUpdate {
		t.Errorf("joining observer events = %v, want greeting then games_update", got)
	}
}

func TestBroadcastDropsFailedAndDeliversToRest(t *testing.T) {
	h := New(cache.New())
	good1 := &fakeSender{}
	bad := &fakeSender{}
	good2 := &fakeSender{}
	for _, s := range []*fakeSender{good1, bad, good2} {
		if err := h.Register(s); err != nil {
			t.Fatalf("Register() error = %v", err)
		}
	}
	bad.fail = true

	h.Broadcast(GamesUpdateEvent(nil, time.Now()))

	// Both healthy connections got the update in the same sweep.
	for i, s := range []*fakeSender{good1, good2} {
		if len(s.events) != 2 || s.events[1].Type != EventGamesUpdate {
			t.Errorf("healthy sender %d events = %d, want greeting + update", i, len(s.events))
		}
	}
	if h.Count() != 2 {
		t.Errorf("Count() = %d after sweep, want 2 (failed sender removed)", h.Count())
	}
}

func TestUnregisterIdempotent(t *testing.T) {
	h := New(cache.New())
	s := &fakeSender{}
	if err := h.Register(s); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	h.Unregister(s)
	h.Unregister(s)
	if h.Count() != 0 {
		t.Errorf("Count() = %d, want 0", h.Count())
	}
}
