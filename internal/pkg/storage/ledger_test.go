package storage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error = %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewWithDB(db), mock
}

func pendingBet() *models.Bet {
	return &models.Bet{
		GameID:          "KC_BUF_20250914",
		BetType:         models.BetMLHome,
		Selection:       "BUF",
		Stake:           50,
		Odds:            -110,
		PotentialPayout: 95.45,
		PlacedAt:        time.Date(2025, 9, 12, 10, 0, 0, 0, time.UTC),
		HomeTeamAbbr:    "BUF",
		AwayTeamAbbr:    "KC",
	}
}

func TestPlaceBetDebitsAndInserts(t *testing.T) {
	s, mock := newMockStore(t)
	bet := pendingBet()

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bankroll SET balance = balance - ").
		WithArgs(bet.Stake, bet.PlacedAt).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("INSERT INTO bets").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))
	mock.ExpectCommit()

	if err := s.PlaceBet(context.Background(), bet); err != nil {
		t.Fatalf("PlaceBet() error = %v", err)
	}
	if bet.ID != 7 {
		t.Errorf("bet.ID = %d, want 7", bet.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPlaceBetInsufficientFundsRollsBack(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	// Guarded debit touches no row when the balance cannot cover the stake.
	mock.ExpectExec("UPDATE bankroll SET balance = balance - ").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.PlaceBet(context.Background(), pendingBet())
	if !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("PlaceBet() error = %v, want ErrInsufficientFunds", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettleBetCreditsOnWin(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bets SET status = ").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE bankroll SET balance = balance \\+ ").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.SettleBet(context.Background(), 7, models.BetWon, 145.45, 27, 24); err != nil {
		t.Fatalf("SettleBet() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettleBetLossCreditsNothing(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bets SET status = ").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	if err := s.SettleBet(context.Background(), 7, models.BetLost, 0, 17, 24); err != nil {
		t.Fatalf("SettleBet() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestSettleBetAlreadySettled(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE bets SET status = ").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := s.SettleBet(context.Background(), 7, models.BetWon, 145.45, 27, 24)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("SettleBet() on settled bet error = %v, want ErrNotFound", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestInitBankrollIsIdempotent(t *testing.T) {
	s, mock := newMockStore(t)

	// ON CONFLICT DO NOTHING makes re-seeding a no-op.
	mock.ExpectExec("INSERT INTO bankroll").
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := s.InitBankroll(context.Background(), 1000); err != nil {
		t.Fatalf("InitBankroll() error = %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestGetBetNotFound(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT (.+) FROM bets WHERE id = ").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := s.GetBet(context.Background(), 99)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBet() error = %v, want ErrNotFound", err)
	}
}
