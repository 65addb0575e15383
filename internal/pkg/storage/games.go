package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// SaveGames upserts one snapshot of games and their lines, keyed by
// (game_id, fetched_at). Replaying the same fetch overwrites the same
// rows, so persistence is idempotent. Returns the number of games saved.
func (s *Store) SaveGames(ctx context.Context, games []models.Game) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer tx.Rollback()

	gameQuery := `
	INSERT INTO games (
		game_id, home_team_name, home_team_abbr, away_team_name, away_team_abbr,
		start_time, status, fetched_at
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	ON CONFLICT (game_id, fetched_at) DO UPDATE SET
		home_team_name = EXCLUDED.home_team_name,
		home_team_abbr = EXCLUDED.home_team_abbr,
		away_team_name = EXCLUDED.away_team_name,
		away_team_abbr = EXCLUDED.away_team_abbr,
		start_time = EXCLUDED.start_time,
		status = EXCLUDED.status
	`
	linesQuery := `
	INSERT INTO betting_lines (
		game_id, fetched_at, ml_home, ml_away,
		spread_home_line, spread_home_odds, spread_away_line, spread_away_odds,
		total_over_line, total_over_odds, total_under_line, total_under_odds
	) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	ON CONFLICT (game_id, fetched_at) DO UPDATE SET
		ml_home = EXCLUDED.ml_home,
		ml_away = EXCLUDED.ml_away,
		spread_home_line = EXCLUDED.spread_home_line,
		spread_home_odds = EXCLUDED.spread_home_odds,
		spread_away_line = EXCLUDED.spread_away_line,
		spread_away_odds = EXCLUDED.spread_away_odds,
		total_over_line = EXCLUDED.total_over_line,
		total_over_odds = EXCLUDED.total_over_odds,
		total_under_line = EXCLUDED.total_under_line,
		total_under_odds = EXCLUDED.total_under_odds
	`

	for _, g := range games {
		if _, err := tx.ExecContext(ctx, gameQuery,
			g.GameID, g.HomeTeam.Name, g.HomeTeam.Abbreviation,
			g.AwayTeam.Name, g.AwayTeam.Abbreviation,
			g.StartTime, g.Status, g.FetchedAt,
		); err != nil {
			return fmt.Errorf("failed to save game %s: %w", g.GameID, err)
		}

		bl := g.BettingLines
		if _, err := tx.ExecContext(ctx, linesQuery,
			g.GameID, g.FetchedAt,
			bl.MoneyLine.Home, bl.MoneyLine.Away,
			bl.Spread.Home.Line, bl.Spread.Home.Odds,
			bl.Spread.Away.Line, bl.Spread.Away.Odds,
			bl.Total.Over.Line, bl.Total.Over.Odds,
			bl.Total.Under.Line, bl.Total.Under.Odds,
		); err != nil {
			return fmt.Errorf("failed to save lines for %s: %w", g.GameID, err)
		}
	}

	return tx.Commit()
}

// GetGames returns historical game rows joined with their lines, newest
// first. gameID and since are optional filters.
func (s *Store) GetGames(ctx context.Context, gameID string, since time.Time, limit int) ([]models.Game, error) {
	query := `
	SELECT g.game_id, g.home_team_name, g.home_team_abbr,
	       g.away_team_name, g.away_team_abbr, g.start_time, g.status, g.fetched_at,
	       b.ml_home, b.ml_away,
	       b.spread_home_line, b.spread_home_odds, b.spread_away_line, b.spread_away_odds,
	       b.total_over_line, b.total_over_odds, b.total_under_line, b.total_under_odds
	FROM games g
	LEFT JOIN betting_lines b ON g.game_id = b.game_id AND g.fetched_at = b.fetched_at
	WHERE 1=1
	`
	args := []interface{}{}
	if gameID != "" {
		args = append(args, gameID)
		query += fmt.Sprintf(" AND g.game_id = $%d", len(args))
	}
	if !since.IsZero() {
		args = append(args, since)
		query += fmt.Sprintf(" AND g.fetched_at >= $%d", len(args))
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY g.fetched_at DESC LIMIT $%d", len(args))

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query games: %w", err)
	}
	defer rows.Close()

	var games []models.Game
	for rows.Next() {
		var g models.Game
		var mlHome, mlAway, spreadHomeOdds, spreadAwayOdds, overOdds, underOdds sql.NullInt64
		var spreadHomeLine, spreadAwayLine, overLine, underLine sql.NullFloat64

		if err := rows.Scan(
			&g.GameID, &g.HomeTeam.Name, &g.HomeTeam.Abbreviation,
			&g.AwayTeam.Name, &g.AwayTeam.Abbreviation, &g.StartTime, &g.Status, &g.FetchedAt,
			&mlHome, &mlAway,
			&spreadHomeLine, &spreadHomeOdds, &spreadAwayLine, &spreadAwayOdds,
			&overLine, &overOdds, &underLine, &underOdds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan game row: %w", err)
		}

		g.BettingLines = models.BettingLines{
			MoneyLine: models.MoneyLine{Home: nullInt(mlHome), Away: nullInt(mlAway)},
			Spread: models.Spread{
				Home: models.SpreadSide{Line: nullFloat(spreadHomeLine), Odds: nullInt(spreadHomeOdds)},
				Away: models.SpreadSide{Line: nullFloat(spreadAwayLine), Odds: nullInt(spreadAwayOdds)},
			},
			Total: models.Total{
				Over:  models.TotalSide{Line: nullFloat(overLine), Odds: nullInt(overOdds)},
				Under: models.TotalSide{Line: nullFloat(underLine), Odds: nullInt(underOdds)},
			},
		}
		games = append(games, g)
	}
	return games, rows.Err()
}

// GetLineHistory returns the line movement for one game ordered by
// fetch time. An empty result means the game was never recorded.
func (s *Store) GetLineHistory(ctx context.Context, gameID string) ([]models.LineHistoryEntry, error) {
	query := `
	SELECT fetched_at, ml_home, ml_away,
	       spread_home_line, spread_home_odds, spread_away_line, spread_away_odds,
	       total_over_line, total_over_odds
	FROM betting_lines
	WHERE game_id = $1
	ORDER BY fetched_at ASC
	`
	rows, err := s.db.QueryContext(ctx, query, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to query line history: %w", err)
	}
	defer rows.Close()

	var history []models.LineHistoryEntry
	for rows.Next() {
		var e models.LineHistoryEntry
		var mlHome, mlAway, spreadHomeOdds, spreadAwayOdds, overOdds sql.NullInt64
		var spreadHomeLine, spreadAwayLine, overLine sql.NullFloat64

		if err := rows.Scan(
			&e.FetchedAt, &mlHome, &mlAway,
			&spreadHomeLine, &spreadHomeOdds, &spreadAwayLine, &spreadAwayOdds,
			&overLine, &overOdds,
		); err != nil {
			return nil, fmt.Errorf("failed to scan history row: %w", err)
		}

		e.MoneyLine = models.LineHistoryMoneyLine{Home: nullInt(mlHome), Away: nullInt(mlAway)}
		e.Spread = models.LineHistorySpread{
			HomeLine: nullFloat(spreadHomeLine), HomeOdds: nullInt(spreadHomeOdds),
			AwayLine: nullFloat(spreadAwayLine), AwayOdds: nullInt(spreadAwayOdds),
		}
		e.Total = models.LineHistoryTotal{OverLine: nullFloat(overLine), OverOdds: nullInt(overOdds)}
		history = append(history, e)
	}
	return history, rows.Err()
}

// GetUniqueGameIDs lists every distinct game id ever recorded.
func (s *Store) GetUniqueGameIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT game_id FROM games ORDER BY game_id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query game ids: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan game id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func nullInt(v sql.NullInt64) *int {
	if !v.Valid {
		return nil
	}
	n := int(v.Int64)
	return &n
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
