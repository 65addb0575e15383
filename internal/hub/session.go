package hub

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

// clientMessage is the inbound frame shape. Observers only ever send
// heartbeats.
type clientMessage struct {
	Type string `json:"type"`
}

// Session wraps one websocket connection as a hub Sender. All writes go
// through a single mutex so an observer sees events in the order they
// were generated.
type Session struct {
	id      string
	conn    *websocket.Conn
	writeMu sync.Mutex
}

// NewSession wraps an upgraded websocket connection.
func NewSession(conn *websocket.Conn) *Session {
	return &Session{
		id:   uuid.New().String(),
		conn: conn,
	}
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// SendEvent writes one event with a deadline. A write error means the
// connection is dead and the hub will drop the session.
func (s *Session) SendEvent(evt Event) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return s.conn.WriteJSON(evt)
}

// ReadLoop consumes inbound frames until the connection closes or ctx
// is cancelled, answering heartbeats immediately. It never touches the
// snapshot cache.
func (s *Session) ReadLoop(ctx context.Context) {
	s.conn.SetReadLimit(maxMessageSize)

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return
		}

		var msg clientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			continue
		}
		if msg.Type == "ping" {
			if err := s.SendEvent(PongEvent(time.Now())); err != nil {
				return
			}
		}
	}
}

// Close closes the underlying connection, unblocking ReadLoop.
func (s *Session) Close() error {
	return s.conn.Close()
}
