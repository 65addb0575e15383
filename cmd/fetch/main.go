// Command fetch performs a single board scrape and prints the
// normalized games as JSON. Useful for checking selectors without
// running the full server.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/oddsboard/oddsboard/internal/normalizer"
	"github.com/oddsboard/oddsboard/internal/pkg/config"
	"github.com/oddsboard/oddsboard/internal/pkg/logging"
	"github.com/oddsboard/oddsboard/internal/scrape"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Fetch failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file")
	boardURL := flag.String("url", "", "Override the board URL")
	headful := flag.Bool("headful", false, "Run the browser with a visible window")
	raw := flag.Bool("raw", false, "Print raw cards instead of normalized games")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logging.Setup(cfg.LogLevel, "fetch")

	if *boardURL != "" {
		cfg.Scrape.BoardURL = *boardURL
	}
	if *headful {
		cfg.Scrape.Headless = false
	}

	fetcher := scrape.NewFetcher(cfg.Scrape.BoardURL, cfg.Scrape.Headless, cfg.Scrape.Timeout)

	cards, err := fetcher.Fetch(context.Background())
	if err != nil {
		return err
	}

	var out interface{}
	if *raw {
		out = cards
	} else {
		games := normalizer.Games(cards, time.Now())
		slog.Info("Fetch complete", "cards", len(cards), "games", len(games))
		out = games
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
