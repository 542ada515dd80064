package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

type Config struct {
	TelegramBotToken string
	DatabaseURL      string
	RedisURL         string
	HTTPPort         int

	QuoteCacheTTLSecs int
	SnapshotPollSecs  int
	FetchTimeoutSecs  int
}

func Load() *Config {
	cfg := &Config{
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		RedisURL:         os.Getenv("REDIS_URL"),
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set")
	}
	if cfg.DatabaseURL == "" {
		log.Println("Warning: DATABASE_URL not set, history will not survive restarts")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, quote caching disabled")
	}

	cfg.HTTPPort = 8080
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		if n, err := strconv.Atoi(strings.TrimPrefix(v, ":")); err == nil && n > 0 {
			cfg.HTTPPort = n
		}
	}

	cfg.QuoteCacheTTLSecs = 300
	if v := strings.TrimSpace(os.Getenv("QUOTE_CACHE_TTL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.QuoteCacheTTLSecs = n
		}
	}

	cfg.SnapshotPollSecs = 900
	if v := strings.TrimSpace(os.Getenv("SNAPSHOT_POLL_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SnapshotPollSecs = n
		}
	}

	cfg.FetchTimeoutSecs = 10
	if v := strings.TrimSpace(os.Getenv("FETCH_TIMEOUT_SECS")); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.FetchTimeoutSecs = n
		}
	}

	return cfg
}
