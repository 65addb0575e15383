// Package storage is the durable system of record: the append-only
// snapshot history and the wagering ledger, both in PostgreSQL.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"
)

// Sentinel errors surfaced to the request layer.
var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNoPendingBets     = errors.New("no pending bets for game")
)

// Store wraps the PostgreSQL connection.
type Store struct {
	db *sql.DB
}

// New opens the database, verifies connectivity and ensures the schema.
func New(dsn string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("postgres DSN is required")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres connection: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping postgres: %w", err)
	}

	s := &Store{db: db}
	if err := s.initSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	slog.Info("PostgreSQL storage initialized")
	return s, nil
}

// NewWithDB wraps an existing connection. Used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) initSchema(ctx context.Context) error {
	query := `
	CREATE TABLE IF NOT EXISTS games (
		id SERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		home_team_name TEXT NOT NULL,
		home_team_abbr TEXT NOT NULL,
		away_team_name TEXT NOT NULL,
		away_team_abbr TEXT NOT NULL,
		start_time TIMESTAMPTZ NOT NULL,
		status TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL,
		UNIQUE(game_id, fetched_at)
	);

	CREATE TABLE IF NOT EXISTS betting_lines (
		id SERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		fetched_at TIMESTAMPTZ NOT NULL,
		ml_home INTEGER,
		ml_away INTEGER,
		spread_home_line DOUBLE PRECISION,
		spread_home_odds INTEGER,
		spread_away_line DOUBLE PRECISION,
		spread_away_odds INTEGER,
		total_over_line DOUBLE PRECISION,
		total_over_odds INTEGER,
		total_under_line DOUBLE PRECISION,
		total_under_odds INTEGER,
		UNIQUE(game_id, fetched_at)
	);

	CREATE TABLE IF NOT EXISTS bankroll (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		balance DOUBLE PRECISION NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL
	);

	CREATE TABLE IF NOT EXISTS bets (
		id SERIAL PRIMARY KEY,
		game_id TEXT NOT NULL,
		bet_type TEXT NOT NULL,
		selection TEXT NOT NULL,
		stake DOUBLE PRECISION NOT NULL,
		odds INTEGER NOT NULL,
		potential_payout DOUBLE PRECISION NOT NULL,
		line_value DOUBLE PRECISION,
		status TEXT NOT NULL DEFAULT 'pending',
		result_amount DOUBLE PRECISION,
		home_score INTEGER,
		away_score INTEGER,
		placed_at TIMESTAMPTZ NOT NULL,
		settled_at TIMESTAMPTZ,
		home_team_abbr TEXT NOT NULL,
		away_team_abbr TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_games_game_id ON games(game_id);
	CREATE INDEX IF NOT EXISTS idx_games_fetched_at ON games(fetched_at);
	CREATE INDEX IF NOT EXISTS idx_betting_lines_game_id ON betting_lines(game_id);
	CREATE INDEX IF NOT EXISTS idx_bets_game_id ON bets(game_id);
	CREATE INDEX IF NOT EXISTS idx_bets_status ON bets(status);
	`
	_, err := s.db.ExecContext(ctx, query)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
