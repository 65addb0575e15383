// Package notify pushes out-of-band alerts to Telegram: fetch failures
// and notable line movement between consecutive snapshots.
package notify

import (
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/oddsboard/oddsboard/internal/pkg/models"
)

// Min interval between two Telegram messages to the same chat, to stay
// under the ~30/min API limit.
const sendInterval = 2 * time.Second

// Line moves smaller than these are routine drift, not worth an alert.
const (
	spreadMoveThreshold = 1.5
	moneyLineThreshold  = 40
)

// TelegramNotifier queues alerts and sends them from one background
// goroutine with rate limiting. All Send-side methods are non-blocking;
// a full queue drops the message.
type TelegramNotifier struct {
	bot    *tgbotapi.BotAPI
	chatID int64

	queue chan string
	done  chan struct{}

	mu       sync.Mutex
	lastSend time.Time
}

// NewTelegramNotifier connects the bot. Returns nil when token is empty
// or the API is unreachable; callers treat a nil notifier as disabled.
func NewTelegramNotifier(token string, chatID int64) *TelegramNotifier {
	if token == "" || chatID == 0 {
		return nil
	}

	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		slog.Error("Failed to create telegram bot", "error", err)
		return nil
	}
	if _, err := bot.GetMe(); err != nil {
		slog.Error("Failed to verify telegram bot", "error", err)
		return nil
	}

	n := &TelegramNotifier{
		bot:    bot,
		chatID: chatID,
		queue:  make(chan string, 100),
		done:   make(chan struct{}),
	}
	go n.sender()

	slog.Info("Telegram notifier initialized", "chat_id", chatID)
	return n
}

// Stop closes the queue and waits until every queued message is sent.
func (n *TelegramNotifier) Stop() {
	if n == nil {
		return
	}
	close(n.queue)
	<-n.done
}

// FetchFailed alerts that a board fetch failed.
func (n *TelegramNotifier) FetchFailed(errMsg string) {
	n.enqueue(fmt.Sprintf("⚠️ *Board fetch failed*\n\n`%s`", errMsg))
}

// SnapshotReplaced compares consecutive snapshots and alerts on large
// spread or money line moves.
func (n *TelegramNotifier) SnapshotReplaced(prev, curr []models.Game) {
	if len(prev) == 0 {
		return
	}
	prevByID := make(map[string]models.Game, len(prev))
	for _, g := range prev {
		prevByID[g.GameID] = g
	}

	for _, g := range curr {
		old, ok := prevByID[g.GameID]
		if !ok {
			continue
		}
		for _, move := range lineMoves(old, g) {
			n.enqueue(fmt.Sprintf("📊 *Line move: %s*\n\n%s", g.Matchup(), move))
		}
	}
}

func lineMoves(old, curr models.Game) []string {
	var moves []string

	if d := floatMove(old.BettingLines.Spread.Home.Line, curr.BettingLines.Spread.Home.Line); math.Abs(d) >= spreadMoveThreshold {
		moves = append(moves, fmt.Sprintf("Home spread %+.1f → %+.1f",
			*old.BettingLines.Spread.Home.Line, *curr.BettingLines.Spread.Home.Line))
	}
	if d := intMove(old.BettingLines.MoneyLine.Home, curr.BettingLines.MoneyLine.Home); abs(d) >= moneyLineThreshold {
		moves = append(moves, fmt.Sprintf("Home ML %+d → %+d",
			*old.BettingLines.MoneyLine.Home, *curr.BettingLines.MoneyLine.Home))
	}
	if d := intMove(old.BettingLines.MoneyLine.Away, curr.BettingLines.MoneyLine.Away); abs(d) >= moneyLineThreshold {
		moves = append(moves, fmt.Sprintf("Away ML %+d → %+d",
			*old.BettingLines.MoneyLine.Away, *curr.BettingLines.MoneyLine.Away))
	}
	return moves
}

func floatMove(old, curr *float64) float64 {
	if old == nil || curr == nil {
		return 0
	}
	return *curr - *old
}

func intMove(old, curr *int) int {
	if old == nil || curr == nil {
		return 0
	}
	return *curr - *old
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func (n *TelegramNotifier) enqueue(text string) {
	if n == nil {
		return
	}
	select {
	case n.queue <- text:
	default:
		slog.Warn("Telegram queue full, dropping alert")
	}
}

func (n *TelegramNotifier) sender() {
	defer close(n.done)
	for text := range n.queue {
		n.mu.Lock()
		if elapsed := time.Since(n.lastSend); elapsed < sendInterval {
			time.Sleep(sendInterval - elapsed)
		}
		n.lastSend = time.Now()
		n.mu.Unlock()

		msg := tgbotapi.NewMessage(n.chatID, text)
		msg.ParseMode = tgbotapi.ModeMarkdown
		if _, err := n.bot.Send(msg); err != nil {
			slog.Error("Telegram send failed", "error", err)
		}
	}
}
