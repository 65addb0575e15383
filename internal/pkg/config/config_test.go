package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg.Server.Addr() != "127.0.0.1:8000" {
		t.Errorf("Addr() = %q, want default", cfg.Server.Addr())
	}
	if cfg.Scrape.PollInterval != 60*time.Second {
		t.Errorf("PollInterval = %s, want 60s", cfg.Scrape.PollInterval)
	}
	if !cfg.Scrape.Headless {
		t.Errorf("Headless = false, want true by default")
	}
	if cfg.Betting.MinBet != 5 || cfg.Betting.MaxBet != 500 {
		t.Errorf("bet limits = %.2f/%.2f, want 5/500", cfg.Betting.MinBet, cfg.Betting.MaxBet)
	}
}

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
scrape:
  poll_interval: 30s
  headless: false
betting:
  starting_balance: 2500
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Scrape.PollInterval != 30*time.Second {
		t.Errorf("PollInterval = %s, want 30s", cfg.Scrape.PollInterval)
	}
	if cfg.Scrape.Headless {
		t.Errorf("Headless = true, want false from file")
	}
	if cfg.Betting.StartingBalance != 2500 {
		t.Errorf("StartingBalance = %.2f, want 2500", cfg.Betting.StartingBalance)
	}
	// Untouched keys keep their defaults.
	if cfg.Betting.MinBet != 5 {
		t.Errorf("MinBet = %.2f, want default 5", cfg.Betting.MinBet)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "server:\n  port: -1\n"},
		{"interval too short", "scrape:\n  poll_interval: 100ms\n"},
		{"max below min", "betting:\n  min_bet: 50\n  max_bet: 10\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(writeConfig(t, tt.content)); err == nil {
				t.Errorf("Load() accepted invalid config")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/config.yaml"); err == nil {
		t.Errorf("Load() with missing file returned nil error")
	}
}
