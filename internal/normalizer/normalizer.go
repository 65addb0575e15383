// Package normalizer turns raw board card fragments into canonical Game
// records. It is pure: no I/O, no shared state, and malformed cards are
// skipped instead of failing the whole batch.
package normalizer

import (
	"log/slog"
	"strings"
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Positional layout of the live-market card presentation. The board
// renders 24 buttons per card; only these six carry the main markets.
const (
	posAwaySpread = 0
	posOverTotal  = 4
	posAwayML     = 9
	posHomeSpread = 12
	posUnderTotal = 16
	posHomeML     = 21

	// minLayoutCells guards the positional layout. Below this the cell
	// sequence cannot be trusted and no markets are populated at all.
	minLayoutCells = 22
)

// Games normalizes a batch of cards fetched at fetchedAt. Cards that
// fail structural checks are dropped; the rest become Game records.
func Games(cards []Card, fetchedAt time.Time) []models.Game {
	games := make([]models.Game, 0, len(cards))
	seen := make(map[string]bool, len(cards))

	for _, card := range cards {
		game, ok := parseCard(card, fetchedAt)
		if !ok {
			continue
		}
		if seen[game.GameID] {
			// Derived IDs collide for same-day games sharing an
			// abbreviation pair; the board does not disambiguate.
			slog.Warn("Duplicate game id in fetch", "game_id", game.GameID)
		}
		seen[game.GameID] = true
		games = append(games, game)
	}
	return games
}

func parseCard(card Card, fetchedAt time.Time) (models.Game, bool) {
	labels := card.TeamLabels
	if len(labels) < 2 {
		labels = card.AltTeamLabels
	}
	if len(labels) < 2 {
		return models.Game{}, false
	}

	awayName := strings.TrimSpace(labels[0])
	homeName := strings.TrimSpace(labels[1])
	awayAbbr := Abbreviate(awayName)
	homeAbbr := Abbreviate(homeName)

	startTime, hasTime := ParseStartTime(card.TimeText, fetchedAt)
	if !hasTime {
		startTime = fetchedAt
	}

	status := models.StatusUpcoming
	if len(card.ScoreCells) >= 2 {
		status = models.StatusLive
	} else if strings.Contains(strings.ToUpper(card.TimeText), "FINAL") {
		status = models.StatusFinal
	}

	return models.Game{
		GameID:       models.GameID(awayAbbr, homeAbbr, startTime),
		HomeTeam:     models.Team{Name: homeName, Abbreviation: homeAbbr},
		AwayTeam:     models.Team{Name: awayName, Abbreviation: awayAbbr},
		StartTime:    startTime,
		Status:       status,
		BettingLines: parseLines(card.Cells),
		FetchedAt:    fetchedAt,
	}, true
}

// parseLines applies the fixed positional layout. Short sequences leave
// every market absent; there is no partial layout guessing.
func parseLines(cells []Cell) models.BettingLines {
	var lines models.BettingLines
	if len(cells) < minLayoutCells {
		return lines
	}

	lines.Spread = models.Spread{
		Away: models.SpreadSide{
			Line: ParseLineValue(cells[posAwaySpread].Points),
			Odds: ParseAmericanOdds(cells[posAwaySpread].Odds),
		},
		Home: models.SpreadSide{
			Line: ParseLineValue(cells[posHomeSpread].Points),
			Odds: ParseAmericanOdds(cells[posHomeSpread].Odds),
		},
	}
	lines.Total = models.Total{
		Over: models.TotalSide{
			Line: ParseLineValue(cells[posOverTotal].Points),
			Odds: ParseAmericanOdds(cells[posOverTotal].Odds),
		},
		Under: models.TotalSide{
			Line: ParseLineValue(cells[posUnderTotal].Points),
			Odds: ParseAmericanOdds(cells[posUnderTotal].Odds),
		},
	}
	lines.MoneyLine = models.MoneyLine{
		Away: ParseAmericanOdds(cells[posAwayML].Odds),
		Home: ParseAmericanOdds(cells[posHomeML].Odds),
	}
	return lines
}
