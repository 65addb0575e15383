// Package server is the request surface: REST queries over the
// snapshot and the ledger, bet placement and settlement, and the
// websocket upgrade into the broadcast hub.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/oddsboard/oddsboard/internal/cache"
	"github.com/oddsboard/oddsboard/internal/hub"
	"github.com/oddsboard/oddsboard/internal/pkg/models"
	"github.com/oddsboard/oddsboard/internal/pkg/storage"
)

// Refresher triggers one out-of-band fetch cycle.
type Refresher interface {
	Trigger(ctx context.Context)
}

// Store is the persistence surface the handlers consume. A nil Store
// disables the history and ledger endpoints.
type Store interface {
	GetGames(ctx context.Context, gameID string, since time.Time, limit int) ([]models.Game, error)
	GetLineHistory(ctx context.Context, gameID string) ([]models.LineHistoryEntry, error)
	GetUniqueGameIDs(ctx context.Context) ([]string, error)
	GetBankroll(ctx context.Context) (models.Bankroll, error)
	PlaceBet(ctx context.Context, bet *models.Bet) error
	SettleBet(ctx context.Context, betID int64, status string, resultAmount float64, homeScore, awayScore int) error
	PendingBetsForGame(ctx context.Context, gameID string) ([]models.Bet, error)
	ListBets(ctx context.Context, status string, limit, offset int) ([]models.Bet, int, error)
	GetBet(ctx context.Context, id int64) (models.Bet, error)
}

var _ Store = (*storage.Store)(nil)

// Server holds handler dependencies, constructed once at startup.
type Server struct {
	cache     *cache.Cache
	hub       *hub.Hub
	refresher Refresher
	store     Store
	minBet    float64
	maxBet    float64

	// settleMu serializes game settlement so two requests can never
	// grade the same pending bets concurrently.
	settleMu sync.Mutex
	rng      *rand.Rand
}

// New assembles the server. store may be nil when persistence is off.
func New(c *cache.Cache, h *hub.Hub, refresher Refresher, store Store, minBet, maxBet float64) *Server {
	return &Server{
		cache:     c,
		hub:       h,
		refresher: refresher,
		store:     store,
		minBet:    minBet,
		maxBet:    maxBet,
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Router builds the chi router with all routes mounted.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", s.handleHealth)
	r.Get("/games", s.handleGames)
	r.Get("/games/{gameID}", s.handleGame)
	r.Get("/games/{gameID}/history", s.handleGameHistory)
	r.Post("/games/{gameID}/settle", s.handleSettleGame)
	r.Get("/history", s.handleHistory)
	r.Get("/game-ids", s.handleGameIDs)
	r.Post("/refresh", s.handleRefresh)
	r.Get("/bankroll", s.handleBankroll)
	r.Post("/bets", s.handlePlaceBet)
	r.Get("/bets", s.handleListBets)
	r.Get("/bets/{betID}", s.handleGetBet)
	r.Get("/ws", s.handleWebsocket)

	return r
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    status,
	})
}

func parseIntParam(r *http.Request, param string, defaultValue int) int {
	valueStr := r.URL.Query().Get(param)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}
