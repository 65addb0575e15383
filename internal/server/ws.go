package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/oddsboard/oddsboard/internal/hub"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Observers are anonymous; the board is public data.
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Websocket upgrade failed", "error", err)
		return
	}

	session := hub.NewSession(conn)
	if err := s.hub.Register(session); err != nil {
		slog.Warn("Dropping observer, greeting failed", "session", session.ID(), "error", err)
		conn.Close()
		return
	}
	slog.Info("Observer connected", "session", session.ID())

	defer func() {
		s.hub.Unregister(session)
		session.Close()
		slog.Info("Observer disconnected", "session", session.ID())
	}()

	session.ReadLoop(r.Context())
}
