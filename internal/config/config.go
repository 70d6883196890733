package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr                  string
	DBPath                string
	LogLevel              string
	WordbankPath          string
	WordbankReloadMinutes int
	HistoryPageSize       int
	LeaderboardLimit      int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying sensible defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:                  envOr("ADDR", ":8080"),
		DBPath:                envOr("DB_PATH", "file:vocabapp.db"),
		LogLevel:              envOr("LOG_LEVEL", "INFO"),
		WordbankPath:          envOr("WORDBANK_PATH", ""),
		WordbankReloadMinutes: envIntOr("WORDBANK_RELOAD_MINUTES", 60),
		HistoryPageSize:       envIntOr("HISTORY_PAGE_SIZE", 20),
		LeaderboardLimit:      envIntOr("LEADERBOARD_LIMIT", 10),
	}
}

// Validate reports configuration values that would prevent the server from running.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("ADDR cannot be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("DB_PATH cannot be empty")
	}
	if c.HistoryPageSize <= 0 {
		return fmt.Errorf("HISTORY_PAGE_SIZE must be positive, got %d", c.HistoryPageSize)
	}
	if c.LeaderboardLimit <= 0 {
		return fmt.Errorf("LEADERBOARD_LIMIT must be positive, got %d", c.LeaderboardLimit)
	}
	if c.WordbankReloadMinutes < 0 {
		return fmt.Errorf("WORDBANK_RELOAD_MINUTES cannot be negative, got %d", c.WordbankReloadMinutes)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}
