package models

import (
	"fmt"
	"time"
)

// Game status values as they appear on the board.
const (
	StatusUpcoming = "upcoming"
	StatusLive     = "live"
	StatusFinal    = "final"
)

// Team is a participant in a game. Abbreviation is resolved once at
// normalization time and never changes afterwards.
type Team struct {
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
}

// MoneyLine holds American odds for both sides. Nil means the book did
// not display a price for that side.
type MoneyLine struct {
	Home *int `json:"home"`
	Away *int `json:"away"`
}

// SpreadSide is one side of a points handicap market.
type SpreadSide struct {
	Line *float64 `json:"line"`
	Odds *int     `json:"odds"`
}

// Spread is the points handicap market. When both lines are present the
// source normally shows home ≈ -away, but momentarily inconsistent data
// is kept as-is rather than repaired.
type Spread struct {
	Home SpreadSide `json:"home"`
	Away SpreadSide `json:"away"`
}

// TotalSide is one side of a combined-score market.
type TotalSide struct {
	Line *float64 `json:"line"`
	Odds *int     `json:"odds"`
}

// Total is the combined-score market.
type Total struct {
	Over  TotalSide `json:"over"`
	Under TotalSide `json:"under"`
}

// BettingLines aggregates the three markets of a game. Each market is
// independently optional.
type BettingLines struct {
	MoneyLine MoneyLine `json:"money_line"`
	Spread    Spread    `json:"spread"`
	Total     Total     `json:"total"`
}

// Game is one matchup as parsed from a single board fragment. A record
// is immutable after construction; every fetch produces new records.
type Game struct {
	GameID       string       `json:"game_id"`
	HomeTeam     Team         `json:"home_team"`
	AwayTeam     Team         `json:"away_team"`
	StartTime    time.Time    `json:"start_time"`
	Status       string       `json:"status"`
	BettingLines BettingLines `json:"betting_lines"`
	FetchedAt    time.Time    `json:"fetched_at"`
}

// GameID derives the identifier used throughout the system.
//
// NOTE: the identifier is not globally unique. Two same-day games whose
// teams resolve to the same abbreviation pair collide; the board never
// disambiguates this and neither do we.
func GameID(awayAbbr, homeAbbr string, start time.Time) string {
	return fmt.Sprintf("%s_%s_%s", awayAbbr, homeAbbr, start.Format("20060102"))
}

// Matchup returns the display form "AWAY @ HOME".
func (g *Game) Matchup() string {
	return fmt.Sprintf("%s @ %s", g.AwayTeam.Abbreviation, g.HomeTeam.Abbreviation)
}
