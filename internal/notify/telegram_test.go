package notify

import (
	"testing"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

func gameWithLines(spreadHome float64, mlHome, mlAway int) models.Game {
	return models.Game{
		GameID:   "KC_BUF_20250914",
		HomeTeam: models.Team{Name: "Buffalo Bills", Abbreviation: "BUF"},
		AwayTeam: models.Team{Name: "Kansas City Chiefs", Abbreviation: "KC"},
		BettingLines: models.BettingLines{
			MoneyLine: models.MoneyLine{Home: &mlHome, Away: &mlAway},
			Spread: models.Spread{
				Home: models.SpreadSide{Line: &spreadHome},
			},
		},
	}
}

func TestLineMovesDetectsLargeMoves(t *testing.T) {
	old := gameWithLines(-2.5, -130, 110)
	curr := gameWithLines(-4.5, -180, 150)

	moves := lineMoves(old, curr)
	if len(moves) != 3 {
		t.Fatalf("got %d moves, want 3 (spread + both money lines): %v", len(moves), moves)
	}
}

func TestLineMovesIgnoresSmallDrift(t *testing.T) {
	old := gameWithLines(-2.5, -130, 110)
	curr := gameWithLines(-3.0, -135, 115)

	if moves := lineMoves(old, curr); len(moves) != 0 {
		t.Errorf("routine drift produced alerts: %v", moves)
	}
}

func TestLineMovesNilLines(t *testing.T) {
	old := gameWithLines(-2.5, -130, 110)
	curr := models.Game{GameID: old.GameID}

	if moves := lineMoves(old, curr); len(moves) != 0 {
		t.Errorf("missing lines produced alerts: %v", moves)
	}
}

func TestDisabledNotifierIsSafe(t *testing.T) {
	var n *TelegramNotifier
	n.FetchFailed("boom")
	n.SnapshotReplaced(nil, nil)
	n.Stop()
}
