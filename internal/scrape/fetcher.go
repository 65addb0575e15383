// Package scrape retrieves the raw betting board with a headless
// browser. The board renders its odds client-side, so a plain HTTP GET
// returns an empty shell; everything useful appears only after script
// execution.
package scrape

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/chromedp/chromedp"

	"github.com/oddsboard/oddsboard/internal/normalizer"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/142.0.0.0 Safari/537.36"

// extractCards runs inside the page and collects every game card's text
// content. It returns plain data only; all interpretation happens in
// the normalizer.
const extractCards = `
(() => {
	const text = (el) => el ? el.innerText.trim() : "";
	let cards = Array.from(document.querySelectorAll("[class*='cb-static-parlay__content']"));
	if (cards.length === 0) {
		cards = Array.from(document.querySelectorAll("[class*='parlay-card-10']"));
	}
	return cards.map((card) => ({
		team_labels: Array.from(card.querySelectorAll("[class*='cb-market__label-inner--parlay']")).map(text),
		alt_team_labels: Array.from(card.querySelectorAll("[class*='cb-market__label-inner']")).map(text),
		cells: Array.from(card.querySelectorAll("[class*='cb-market__button']")).map((btn) => ({
			points: text(btn.querySelector("[class*='button-points']")),
			odds: text(btn.querySelector("[class*='button-odds']")),
			title: text(btn.querySelector("[class*='button-title']")),
		})),
		score_cells: Array.from(card.querySelectorAll("[class*='cb-market__scoreboard-team-score']")).map(text),
		time_text: text(card.querySelector("[class*='cb-market__time'], [class*='event-time']")),
	}));
})()
`

// Fetcher drives a headless Chrome against the board URL. Each Fetch
// call uses a fresh browser so a wedged page never poisons later
// cycles.
type Fetcher struct {
	boardURL string
	headless bool
	timeout  time.Duration
}

// NewFetcher creates a fetcher for the given board URL.
func NewFetcher(boardURL string, headless bool, timeout time.Duration) *Fetcher {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Fetcher{boardURL: boardURL, headless: headless, timeout: timeout}
}

// Fetch loads the board and extracts its raw cards.
func (f *Fetcher) Fetch(ctx context.Context) ([]normalizer.Card, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", f.headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.UserAgent(userAgent),
	)
	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	start := time.Now()
	var cards []normalizer.Card
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(f.boardURL),
		// The board keeps a websocket open, so "page loaded" never
		// settles; give the odds components a moment to render instead.
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(extractCards, &cards),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scrape board: %w", err)
	}

	slog.Debug("Board scraped", "cards", len(cards), "elapsed", time.Since(start))
	return cards, nil
}
