package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Scrape   ScrapeConfig   `yaml:"scrape"`
	Postgres PostgresConfig `yaml:"postgres"`
	Betting  BettingConfig  `yaml:"betting"`
	Telegram TelegramConfig `yaml:"telegram"`
	LogLevel string         `yaml:"log_level"`
}

type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type ScrapeConfig struct {
	BoardURL     string        `yaml:"board_url"`
	Headless     bool          `yaml:"headless"`
	Timeout      time.Duration `yaml:"timeout"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

type PostgresConfig struct {
	DSN     string `yaml:"dsn"`
	Persist bool   `yaml:"persist"` // save snapshots to history
}

type BettingConfig struct {
	MinBet          float64 `yaml:"min_bet"`
	MaxBet          float64 `yaml:"max_bet"`
	StartingBalance float64 `yaml:"starting_balance"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

// Default returns the configuration used when no file overrides it.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: 8000},
		Scrape: ScrapeConfig{
			BoardURL:     "https://sportsbook.draftkings.com/leagues/football/nfl",
			Headless:     true,
			Timeout:      60 * time.Second,
			PollInterval: 60 * time.Second,
		},
		Postgres: PostgresConfig{Persist: true},
		Betting: BettingConfig{
			MinBet:          5,
			MaxBet:          500,
			StartingBalance: 1000,
		},
		LogLevel: "info",
	}
}

// Load reads the config file over the defaults. An empty path returns
// the defaults untouched. Secrets may come from the environment instead
// of the file.
func Load(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if config.Telegram.BotToken == "" {
		config.Telegram.BotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	}
	if config.Postgres.DSN == "" {
		config.Postgres.DSN = os.Getenv("POSTGRES_DSN")
	}

	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if c.Scrape.PollInterval < time.Second {
		return fmt.Errorf("poll interval too short: %s", c.Scrape.PollInterval)
	}
	if c.Betting.MinBet <= 0 || c.Betting.MaxBet < c.Betting.MinBet {
		return fmt.Errorf("invalid bet limits: min=%.2f max=%.2f", c.Betting.MinBet, c.Betting.MaxBet)
	}
	return nil
}
