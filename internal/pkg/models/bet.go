package models

import "time"

// Bet types. The pair encodes both the market and the chosen side.
const (
	BetMLHome     = "ml_home"
	BetMLAway     = "ml_away"
	BetSpreadHome = "spread_home"
	BetSpreadAway = "spread_away"
	BetTotalOver  = "total_over"
	BetTotalUnder = "total_under"
)

// ValidBetType reports whether t is one of the six supported bet types.
func ValidBetType(t string) bool {
	switch t {
	case BetMLHome, BetMLAway, BetSpreadHome, BetSpreadAway, BetTotalOver, BetTotalUnder:
		return true
	}
	return false
}

// Bet statuses. A bet is created pending and transitions exactly once
// to won, lost or push.
const (
	BetPending = "pending"
	BetWon     = "won"
	BetLost    = "lost"
	BetPush    = "push"
)

// ValidBetStatus reports whether s is a known bet status.
func ValidBetStatus(s string) bool {
	switch s {
	case BetPending, BetWon, BetLost, BetPush:
		return true
	}
	return false
}

// Bet is a simulated wager against a snapshot game.
type Bet struct {
	ID              int64      `json:"id"`
	GameID          string     `json:"game_id"`
	BetType         string     `json:"bet_type"`
	Selection       string     `json:"selection"`
	Stake           float64    `json:"stake"`
	Odds            int        `json:"odds"`
	PotentialPayout float64    `json:"potential_payout"`
	LineValue       *float64   `json:"line_value"`
	Status          string     `json:"status"`
	ResultAmount    *float64   `json:"result_amount"`
	HomeScore       *int       `json:"home_score"`
	AwayScore       *int       `json:"away_score"`
	PlacedAt        time.Time  `json:"placed_at"`
	SettledAt       *time.Time `json:"settled_at"`
	HomeTeamAbbr    string     `json:"home_team_abbr"`
	AwayTeamAbbr    string     `json:"away_team_abbr"`
}

// Bankroll is the single process-wide balance. It is debited by bet
// placement and credited by settlement, nothing else.
type Bankroll struct {
	Balance   float64   `json:"balance"`
	UpdatedAt time.Time `json:"updated_at"`
}

// LineHistoryMoneyLine mirrors the money line columns of one historical row.
type LineHistoryMoneyLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// LineHistorySpread mirrors the spread columns of one historical row.
type LineHistorySpread struct {
	HomeLine *float64 `json:"home_line"`
	HomeOdds *int     `json:"home_odds"`
	AwayLine *float64 `json:"away_line"`
	AwayOdds *int     `json:"away_odds"`
}

// LineHistoryTotal mirrors the total columns of one historical row.
type LineHistoryTotal struct {
	OverLine *float64 `json:"over_line"`
	OverOdds *int     `json:"over_odds"`
}

// LineHistoryEntry is one point of line movement for a game, ordered by
// fetch time when returned from storage.
type LineHistoryEntry struct {
	FetchedAt time.Time            `json:"fetched_at"`
	MoneyLine LineHistoryMoneyLine `json:"money_line"`
	Spread    LineHistorySpread    `json:"spread"`
	Total     LineHistoryTotal     `json:"total"`
}
