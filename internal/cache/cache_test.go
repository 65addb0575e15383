package cache

import (
	"testing"
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

func TestReplaceAndRead(t *testing.T) {
	c := New()
	if snap := c.Read(); len(snap.Games) != 0 || snap.FetchCount != 0 {
		t.Fatalf("fresh cache not empty: %+v", snap)
	}

	now := time.Now()
	games := []models.Game{{GameID: "KC_BUF_20250914"}}
	c.Replace(games, now)

	snap := c.Read()
	if len(snap.Games) != 1 || snap.Games[0].GameID != "KC_BUF_20250914" {
		t.Errorf("Read() games = %+v, want the replaced list", snap.Games)
	}
	if snap.FetchCount != 1 {
		t.Errorf("FetchCount = %d, want 1", snap.FetchCount)
	}
	if !snap.LastUpdated.Equal(now) {
		t.Errorf("LastUpdated = %v, want %v", snap.LastUpdated, now)
	}
}

func TestReplaceClearsError(t *testing.T) {
	c := New()
	c.SetError("scrape timeout")
	if snap := c.Read(); snap.LastError != "scrape timeout" {
		t.Fatalf("LastError = %q, want recorded error", snap.LastError)
	}
	c.Replace([]models.Game{{GameID: "g"}}, time.Now())
	if snap := c.Read(); snap.LastError != "" {
		t.Errorf("LastError = %q after successful replace, want empty", snap.LastError)
	}
}

func TestReadReturnsCopy(t *testing.T) {
	c := New()
	c.Replace([]models.Game{{GameID: "a"}}, time.Now())
	snap := c.Read()
	snap.Games[0].GameID = "mutated"
	if g, ok := c.Game("a"); !ok || g.GameID != "a" {
		t.Errorf("cache contents changed through a Read() copy")
	}
}

func TestGameLookup(t *testing.T) {
	c := New()
	c.Replace([]models.Game{{GameID: "a"}, {GameID: "b"}}, time.Now())
	if _, ok := c.Game("b"); !ok {
		t.Errorf("Game(b) not found")
	}
	if _, ok := c.Game("missing"); ok {
		t.Errorf("Game(missing) unexpectedly found")
	}
}
