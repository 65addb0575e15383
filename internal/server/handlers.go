package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	snap := s.cache.Read()

	var lastUpdated interface{}
	if !snap.LastUpdated.IsZero() {
		lastUpdated = snap.LastUpdated
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":            "healthy",
		"last_updated":      lastUpdated,
		"is_fetching":       snap.IsFetching,
		"game_count":        len(snap.Games),
		"websocket_clients": s.hub.Count(),
		"fetch_count":       snap.FetchCount,
		"last_error":        snap.LastError,
	})
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	snap := s.cache.Read()

	if len(snap.Games) == 0 {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"games":        []interface{}{},
			"last_updated": nil,
			"message":      "No games available. Data may still be loading.",
		})
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games":        snap.Games,
		"last_updated": snap.LastUpdated,
		"count":        len(snap.Games),
	})
}

func (s *Server) handleGame(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	game, ok := s.cache.Game(gameID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Game not found: %s", gameID))
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"game": game})
}

func (s *Server) handleGameHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	gameID := chi.URLParam(r, "gameID")

	history, err := s.store.GetLineHistory(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load line history")
		return
	}
	if len(history) == 0 {
		respondError(w, http.StatusNotFound, fmt.Sprintf("No history for game: %s", gameID))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id": gameID,
		"history": history,
		"count":   len(history),
	})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	var since time.Time
	if raw := r.URL.Query().Get("since"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid datetime format")
			return
		}
		since = parsed
	}

	limit := parseIntParam(r, "limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}

	games, err := s.store.GetGames(r.Context(), "", since, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load historical games")
		return
	}
	if games == nil {
		games = []models.Game{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

func (s *Server) handleGameIDs(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	ids, err := s.store.GetUniqueGameIDs(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load game ids")
		return
	}
	if ids == nil {
		ids = []string{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_ids": ids,
		"count":    len(ids),
	})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	// The fetch can take tens of seconds in the browser; run it off the
	// request goroutine and let observers see the result via the hub.
	go s.refresher.Trigger(context.Background())
	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"status": "refresh started",
	})
}
