package hub

import (
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Event types pushed to observers.
const (
	EventConnectionEstablished = "connection_established"
	EventGamesUpdate           = "games_update"
	EventError                 = "error"
	EventPong                  = "pong"
)

// Event is one message on an observer's stream. All event kinds share
// the envelope; unused fields are omitted from the wire form.
type Event struct {
	Type        string        `json:"type"`
	Timestamp   time.Time     `json:"timestamp"`
	GameCount   *int          `json:"game_count,omitempty"`
	Games       []models.Game `json:"games,omitempty"`
	LastUpdated *time.Time    `json:"last_updated,omitempty"`
	Error       string        `json:"error,omitempty"`
}

// GamesUpdateEvent carries the full current game list after a poll.
func GamesUpdateEvent(games []models.Game, at time.Time) Event {
	n := len(games)
	return Event{
		Type:      EventGamesUpdate,
		Timestamp: at,
		GameCount: &n,
		Games:     games,
	}
}

// ErrorEvent reports a failed fetch cycle.
func ErrorEvent(msg string, at time.Time) Event {
	return Event{Type: EventError, Timestamp: at, Error: msg}
}

// PongEvent answers an observer heartbeat.
func PongEvent(at time.Time) Event {
	return Event{Type: EventPong, Timestamp: at}
}
