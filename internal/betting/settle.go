// Package betting holds the pure wagering math: payout pricing,
// placement validation and bet grading against final scores. Nothing in
// here touches storage or the snapshot.
package betting

import (
	"fmt"
	"math"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Default stake bounds for the simulation ledger.
const (
	DefaultMinBet = 5.00
	DefaultMaxBet = 500.00
)

// CalculatePayout prices an American-odds wager: the total return
// including the stake, rounded to two decimals. Zero odds are not a
// valid American price and must be rejected before pricing.
func CalculatePayout(stake float64, odds int) float64 {
	var profit float64
	if odds > 0 {
		profit = stake * float64(odds) / 100
	} else {
		profit = stake * 100 / math.Abs(float64(odds))
	}
	return Round2(stake + profit)
}

// DetermineBetResult grades one bet against a final score.
//
// won  -> result is the full payout (stake + profit)
// lost -> result is 0
// push -> result is the stake, returned without profit
//
// A spread or total bet with no line value, or an unknown bet type, is
// an ungradable bet and resolves to (lost, 0).
func DetermineBetResult(betType string, lineValue *float64, odds int, stake float64, homeScore, awayScore int) (string, float64) {
	totalPoints := float64(homeScore + awayScore)

	switch betType {
	case models.BetMLHome:
		switch {
		case homeScore > awayScore:
			return models.BetWon, CalculatePayout(stake, odds)
		case homeScore < awayScore:
			return models.BetLost, 0
		default:
			return models.BetPush, stake
		}

	case models.BetMLAway:
		switch {
		case awayScore > homeScore:
			return models.BetWon, CalculatePayout(stake, odds)
		case awayScore < homeScore:
			return models.BetLost, 0
		default:
			return models.BetPush, stake
		}

	case models.BetSpreadHome:
		if lineValue == nil {
			return models.BetLost, 0
		}
		adjusted := float64(homeScore) + *lineValue
		switch {
		case adjusted > float64(awayScore):
			return models.BetWon, CalculatePayout(stake, odds)
		case adjusted < float64(awayScore):
			return models.BetLost, 0
		default:
			return models.BetPush, stake
		}

	case models.BetSpreadAway:
		if lineValue == nil {
			return models.BetLost, 0
		}
		adjusted := float64(awayScore) + *lineValue
		switch {
		case adjusted > float64(homeScore):
			return models.BetWon, CalculatePayout(stake, odds)
		case adjusted < float64(homeScore):
			return models.BetLost, 0
		default:
			return models.BetPush, stake
		}

	case models.BetTotalOver:
		if lineValue == nil {
			return models.BetLost, 0
		}
		switch {
		case totalPoints > *lineValue:
			return models.BetWon, CalculatePayout(stake, odds)
		case totalPoints < *lineValue:
			return models.BetLost, 0
		default:
			// Unreachable for half-point lines with integer scores.
			return models.BetPush, stake
		}

	case models.BetTotalUnder:
		if lineValue == nil {
			return models.BetLost, 0
		}
		switch {
		case totalPoints < *lineValue:
			return models.BetWon, CalculatePayout(stake, odds)
		case totalPoints > *lineValue:
			return models.BetLost, 0
		default:
			return models.BetPush, stake
		}
	}

	return models.BetLost, 0
}

// ValidateBetPlacement checks stake bounds and funds. The returned
// error text is surfaced directly to the caller as the rejection reason.
func ValidateBetPlacement(stake, balance, minBet, maxBet float64) error {
	if stake < minBet {
		return fmt.Errorf("minimum bet is $%.2f", minBet)
	}
	if stake > maxBet {
		return fmt.Errorf("maximum bet is $%.2f", maxBet)
	}
	if stake > balance {
		return fmt.Errorf("insufficient funds: balance is $%.2f", balance)
	}
	return nil
}

// Round2 rounds a dollar amount to cents.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
