package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oddsboard/oddsboard/internal/cache"
	"github.com/oddsboard/oddsboard/internal/hub"
	"github.com/oddsboard/oddsboard/internal/notify"
	"github.com/oddsboard/oddsboard/internal/pkg/config"
	"github.com/oddsboard/oddsboard/internal/pkg/logging"
	"github.com/oddsboard/oddsboard/internal/pkg/storage"
	"github.com/oddsboard/oddsboard/internal/scheduler"
	"github.com/oddsboard/oddsboard/internal/scrape"
	"github.com/oddsboard/oddsboard/internal/server"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "Path to config file (empty = built-in defaults)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logging.Setup(cfg.LogLevel, "oddsboard")
	slog.Info("Starting oddsboard server", "addr", cfg.Server.Addr(), "poll_interval", cfg.Scrape.PollInterval)

	c := cache.New()
	h := hub.New(c)

	var store *storage.Store
	if cfg.Postgres.DSN != "" {
		store, err = storage.New(cfg.Postgres.DSN)
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}
		defer store.Close()

		if err := store.InitBankroll(context.Background(), cfg.Betting.StartingBalance); err != nil {
			return fmt.Errorf("failed to init bankroll: %w", err)
		}
	} else {
		slog.Warn("No postgres DSN configured, history and betting are disabled")
	}

	fetcher := scrape.NewFetcher(cfg.Scrape.BoardURL, cfg.Scrape.Headless, cfg.Scrape.Timeout)

	var schedStore scheduler.Store
	if store != nil && cfg.Postgres.Persist {
		schedStore = store
	}

	var notifier scheduler.Notifier
	if tn := notify.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID); tn != nil {
		notifier = tn
		defer tn.Stop()
	}

	sched := scheduler.New(fetcher, c, schedStore, h, notifier, cfg.Scrape.PollInterval)
	sched.Start()
	defer sched.Stop()

	var srvStore server.Store
	if store != nil {
		srvStore = store
	}
	srv := server.New(c, h, sched, srvStore, cfg.Betting.MinBet, cfg.Betting.MaxBet)

	httpServer := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           srv.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
		slog.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}

	slog.Info("Server stopped")
	return nil
}
