package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/oddsboard/oddsboard/internal/betting"
	"github.com/oddsboard/oddsboard/internal/pkg/models"
	"github.com/oddsboard/oddsboard/internal/pkg/storage"
)

type placeBetRequest struct {
	GameID    string   `json:"game_id"`
	BetType   string   `json:"bet_type"`
	Selection string   `json:"selection"`
	Stake     float64  `json:"stake"`
	Odds      int      `json:"odds"`
	LineValue *float64 `json:"line_value"`
}

func (s *Server) handleBankroll(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	bankroll, err := s.store.GetBankroll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bankroll")
		return
	}
	respondJSON(w, http.StatusOK, bankroll)
}

func (s *Server) handlePlaceBet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	var req placeBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !models.ValidBetType(req.BetType) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid bet type: %s", req.BetType))
		return
	}
	if req.Odds == 0 {
		respondError(w, http.StatusBadRequest, "invalid odds")
		return
	}

	game, ok := s.cache.Game(req.GameID)
	if !ok {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Game not found: %s", req.GameID))
		return
	}

	bankroll, err := s.store.GetBankroll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bankroll")
		return
	}
	if err := betting.ValidateBetPlacement(req.Stake, bankroll.Balance, s.minBet, s.maxBet); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	bet := &models.Bet{
		GameID:          req.GameID,
		BetType:         req.BetType,
		Selection:       req.Selection,
		Stake:           req.Stake,
		Odds:            req.Odds,
		PotentialPayout: betting.CalculatePayout(req.Stake, req.Odds),
		LineValue:       req.LineValue,
		Status:          models.BetPending,
		PlacedAt:        time.Now(),
		HomeTeamAbbr:    game.HomeTeam.Abbreviation,
		AwayTeamAbbr:    game.AwayTeam.Abbreviation,
	}

	if err := s.store.PlaceBet(r.Context(), bet); err != nil {
		if errors.Is(err, storage.ErrInsufficientFunds) {
			respondError(w, http.StatusBadRequest, "insufficient funds")
			return
		}
		respondError(w, http.StatusInternalServerError, "failed to place bet")
		return
	}

	updated, err := s.store.GetBankroll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bankroll")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"bet":      bet,
		"bankroll": updated,
	})
}

func (s *Server) handleSettleGame(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}
	gameID := chi.URLParam(r, "gameID")

	s.settleMu.Lock()
	defer s.settleMu.Unlock()

	pending, err := s.store.PendingBetsForGame(r.Context(), gameID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load pending bets")
		return
	}
	if len(pending) == 0 {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("no pending bets for game: %s", gameID))
		return
	}

	homeScore, awayScore := betting.GenerateScores(s.rng)

	settled := make([]models.Bet, 0, len(pending))
	for _, bet := range pending {
		status, amount := betting.DetermineBetResult(bet.BetType, bet.LineValue, bet.Odds, bet.Stake, homeScore, awayScore)
		if err := s.store.SettleBet(r.Context(), bet.ID, status, amount, homeScore, awayScore); err != nil {
			respondError(w, http.StatusInternalServerError, fmt.Sprintf("failed to settle bet %d", bet.ID))
			return
		}

		now := time.Now()
		bet.Status = status
		bet.ResultAmount = &amount
		bet.HomeScore = &homeScore
		bet.AwayScore = &awayScore
		bet.SettledAt = &now
		settled = append(settled, bet)
	}

	bankroll, err := s.store.GetBankroll(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bankroll")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"game_id":      gameID,
		"home_score":   homeScore,
		"away_score":   awayScore,
		"settled_bets": settled,
		"bankroll":     bankroll,
	})
}

func (s *Server) handleListBets(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	status := r.URL.Query().Get("status")
	if status != "" && !models.ValidBetStatus(status) {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid bet status: %s", status))
		return
	}

	limit := parseIntParam(r, "limit", 50)
	if limit < 1 {
		limit = 1
	}
	if limit > 500 {
		limit = 500
	}
	offset := parseIntParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}

	bets, total, err := s.store.ListBets(r.Context(), status, limit, offset)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bets")
		return
	}
	if bets == nil {
		bets = []models.Bet{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"bets":   bets,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}

func (s *Server) handleGetBet(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		respondError(w, http.StatusServiceUnavailable, "persistence is disabled")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "betID"), 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid bet id")
		return
	}

	bet, err := s.store.GetBet(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("Bet not found: %d", id))
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load bet")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"bet": bet})
}
