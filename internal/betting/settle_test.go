package betting

import (
	"math/rand"
	"testing"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

func TestCalculatePayout(t *testing.T) {
	tests := []struct {
		stake float64
		odds  int
		want  float64
	}{
		{100, 150, 250.00},
		{100, -110, 190.91},
		{100, 100, 200.00},
		{100, -100, 200.00},
		{50, 200, 150.00},
		{25, -150, 41.67},
	}
	for _, tt := range tests {
		if got := CalculatePayout(tt.stake, tt.odds); got != tt.want {
			t.Errorf("CalculatePayout(%v, %d) = %v, want %v", tt.stake, tt.odds, got, tt.want)
		}
	}
}

func TestDetermineBetResult(t *testing.T) {
	line := func(v float64) *float64 { return &v }

	tests := []struct {
		name       string
		betType    string
		lineValue  *float64
		odds       int
		stake      float64
		home, away int
		wantStatus string
		wantAmount float64
	}{
		{"ml home win", models.BetMLHome, nil, -110, 100, 24, 20, models.BetWon, 190.91},
		{"ml home loss", models.BetMLHome, nil, -110, 100, 17, 20, models.BetLost, 0},
		{"ml home tie pushes", models.BetMLHome, nil, -110, 100, 20, 20, models.BetPush, 100},
		{"ml away win", models.BetMLAway, nil, 150, 100, 20, 24, models.BetWon, 250},
		{"ml away loss", models.BetMLAway, nil, 150, 100, 24, 20, models.BetLost, 0},

		{"spread home covers", models.BetSpreadHome, line(-3.5), -110, 100, 24, 20, models.BetWon, 190.91},
		{"spread home misses", models.BetSpreadHome, line(3.5), -110, 100, 17, 21, models.BetLost, 0},
		{"spread home exact pushes", models.BetSpreadHome, line(-4), -110, 100, 24, 20, models.BetPush, 100},
		{"spread away covers", models.BetSpreadAway, line(3.5), -110, 100, 23, 20, models.BetWon, 190.91},
		{"spread away exact pushes", models.BetSpreadAway, line(4), -110, 100, 24, 20, models.BetPush, 100},

		{"total over short", models.BetTotalOver, line(45.5), -110, 100, 24, 21, models.BetLost, 0},
		{"total over clears", models.BetTotalOver, line(45.5), -110, 100, 25, 21, models.BetWon, 190.91},
		{"total over exact pushes", models.BetTotalOver, line(45), -110, 100, 24, 21, models.BetPush, 100},
		{"total under clears", models.BetTotalUnder, line(45.5), -110, 100, 24, 21, models.BetWon, 190.91},
		{"total under exact pushes", models.BetTotalUnder, line(45), -110, 100, 24, 21, models.BetPush, 100},

		{"spread without line is ungradable", models.BetSpreadHome, nil, -110, 100, 24, 20, models.BetLost, 0},
		{"total without line is ungradable", models.BetTotalOver, nil, -110, 100, 24, 20, models.BetLost, 0},
		{"unknown type is ungradable", "parlay", line(1), -110, 100, 24, 20, models.BetLost, 0},
	}
	for _, tt := range tests {
		status, amount := DetermineBetResult(tt.betType, tt.lineValue, tt.odds, tt.stake, tt.home, tt.away)
		if status != tt.wantStatus || amount != tt.wantAmount {
			t.Errorf("%s: DetermineBetResult() = (%s, %v), want (%s, %v)",
				tt.name, status, amount, tt.wantStatus, tt.wantAmount)
		}
	}
}

func TestValidateBetPlacement(t *testing.T) {
	tests := []struct {
		name    string
		stake   float64
		balance float64
		wantErr bool
	}{
		{"ok", 50, 1000, false},
		{"at minimum", 5, 1000, false},
		{"at maximum", 500, 1000, false},
		{"below minimum", 4.99, 1000, true},
		{"above maximum", 500.01, 1000, true},
		{"insufficient funds", 100, 99.99, true},
	}
	for _, tt := range tests {
		err := ValidateBetPlacement(tt.stake, tt.balance, DefaultMinBet, DefaultMaxBet)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: ValidateBetPlacement(%v, %v) error = %v, wantErr %v",
				tt.name, tt.stake, tt.balance, err, tt.wantErr)
		}
	}
}

func TestGenerateScores(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		home, away := GenerateScores(rng)
		if home < 0 || home > 45 || away < 0 || away > 45 {
			t.Fatalf("GenerateScores() = (%d, %d), outside realistic range", home, away)
		}
	}
}
