package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// InitBankroll seeds the single bankroll row if it does not exist yet.
// A restart never resets an existing balance.
func (s *Store) InitBankroll(ctx context.Context, startingBalance float64) error {
	_, err := s.db.ExecContext(ctx, `
	INSERT INTO bankroll (id, balance, updated_at)
	VALUES (1, $1, $2)
	ON CONFLICT (id) DO NOTHING
	`, startingBalance, time.Now())
	if err != nil {
		return fmt.Errorf("failed to init bankroll: %w", err)
	}
	return nil
}

// GetBankroll returns the current balance.
func (s *Store) GetBankroll(ctx context.Context) (models.Bankroll, error) {
	var b models.Bankroll
	err := s.db.QueryRowContext(ctx,
		`SELECT balance, updated_at FROM bankroll WHERE id = 1`,
	).Scan(&b.Balance, &b.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return b, ErrNotFound
	}
	if err != nil {
		return b, fmt.Errorf("failed to query bankroll: %w", err)
	}
	return b, nil
}

// PlaceBet debits the bankroll and records the pending bet in a single
// transaction. The debit carries the balance guard, so a stake the
// bankroll cannot cover rolls everything back with ErrInsufficientFunds.
func (s *Store) PlaceBet(ctx context.Context, bet *models.Bet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin placement transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
	UPDATE bankroll SET balance = balance - $1, updated_at = $2
	WHERE id = 1 AND balance >= $1
	`, bet.Stake, bet.PlacedAt)
	if err != nil {
		return fmt.Errorf("failed to debit bankroll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read debit result: %w", err)
	}
	if affected == 0 {
		return ErrInsufficientFunds
	}

	err = tx.QueryRowContext(ctx, `
	INSERT INTO bets (
		game_id, bet_type, selection, stake, odds, potential_payout,
		line_value, status, placed_at, home_team_abbr, away_team_abbr
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	RETURNING id
	`, bet.GameID, bet.BetType, bet.Selection, bet.Stake, bet.Odds,
		bet.PotentialPayout, bet.LineValue, models.BetPending,
		bet.PlacedAt, bet.HomeTeamAbbr, bet.AwayTeamAbbr,
	).Scan(&bet.ID)
	if err != nil {
		return fmt.Errorf("failed to insert bet: %w", err)
	}

	return tx.Commit()
}

// SettleBet writes the terminal outcome of one pending bet and credits
// the bankroll, atomically. Only a positive result amount moves money;
// a loss credits nothing. Settling an already settled bet is a no-op
// error so double settlement can never pay twice.
func (s *Store) SettleBet(ctx context.Context, betID int64, status string, resultAmount float64, homeScore, awayScore int) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin settlement transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	res, err := tx.ExecContext(ctx, `
	UPDATE bets SET status = $1, result_amount = $2, home_score = $3,
		away_score = $4, settled_at = $5
	WHERE id = $6 AND status = 'pending'
	`, status, resultAmount, homeScore, awayScore, now, betID)
	if err != nil {
		return fmt.Errorf("failed to settle bet %d: %w", betID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read settlement result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("bet %d is not pending: %w", betID, ErrNotFound)
	}

	if resultAmount > 0 {
		if _, err := tx.ExecContext(ctx, `
		UPDATE bankroll SET balance = balance + $1, updated_at = $2
		WHERE id = 1
		`, resultAmount, now); err != nil {
			return fmt.Errorf("failed to credit bankroll: %w", err)
		}
	}

	return tx.Commit()
}

// PendingBetsForGame returns the pending bets against one game.
func (s *Store) PendingBetsForGame(ctx context.Context, gameID string) ([]models.Bet, error) {
	return s.queryBets(ctx, `
	SELECT `+betColumns+` FROM bets
	WHERE game_id = $1 AND status = 'pending'
	ORDER BY placed_at ASC
	`, gameID)
}

// ListBets returns a page of bets, newest first, with the total count
// for the same filter. status narrows the page when non-empty.
func (s *Store) ListBets(ctx context.Context, status string, limit, offset int) ([]models.Bet, int, error) {
	countQuery := `SELECT COUNT(*) FROM bets`
	listQuery := `SELECT ` + betColumns + ` FROM bets`
	var countArgs, listArgs []interface{}
	if status != "" {
		countQuery += ` WHERE status = $1`
		listQuery += ` WHERE status = $1`
		countArgs = append(countArgs, status)
		listArgs = append(listArgs, status)
	}
	listArgs = append(listArgs, limit, offset)
	listQuery += fmt.Sprintf(" ORDER BY placed_at DESC LIMIT $%d OFFSET $%d", len(listArgs)-1, len(listArgs))

	var total int
	if err := s.db.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count bets: %w", err)
	}

	bets, err := s.queryBets(ctx, listQuery, listArgs...)
	if err != nil {
		return nil, 0, err
	}
	return bets, total, nil
}

// GetBet returns one bet by id, or ErrNotFound.
func (s *Store) GetBet(ctx context.Context, id int64) (models.Bet, error) {
	bets, err := s.queryBets(ctx, `SELECT `+betColumns+` FROM bets WHERE id = $1`, id)
	if err != nil {
		return models.Bet{}, err
	}
	if len(bets) == 0 {
		return models.Bet{}, ErrNotFound
	}
	return bets[0], nil
}

const betColumns = `id, game_id, bet_type, selection, stake, odds, potential_payout,
	line_value, status, result_amount, home_score, away_score,
	placed_at, settled_at, home_team_abbr, away_team_abbr`

func (s *Store) queryBets(ctx context.Context, query string, args ...interface{}) ([]models.Bet, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query bets: %w", err)
	}
	defer rows.Close()

	var bets []models.Bet
	for rows.Next() {
		var b models.Bet
		var lineValue, resultAmount sql.NullFloat64
		var homeScore, awayScore sql.NullInt64
		var settledAt sql.NullTime

		if err := rows.Scan(
			&b.ID, &b.GameID, &b.BetType, &b.Selection, &b.Stake, &b.Odds,
			&b.PotentialPayout, &lineValue, &b.Status, &resultAmount,
			&homeScore, &awayScore, &b.PlacedAt, &settledAt,
			&b.HomeTeamAbbr, &b.AwayTeamAbbr,
		); err != nil {
			return nil, fmt.Errorf("failed to scan bet row: %w", err)
		}

		b.LineValue = nullFloat(lineValue)
		b.ResultAmount = nullFloat(resultAmount)
		b.HomeScore = nullInt(homeScore)
		b.AwayScore = nullInt(awayScore)
		if settledAt.Valid {
			t := settledAt.Time
			b.SettledAt = &t
		}
		bets = append(bets, b)
	}
	return bets, rows.Err()
}
