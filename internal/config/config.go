package config

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/apex/log"
)

type Config struct {
	Addr          string
	AllowOrigins  string
	GameTTL       time.Duration
	SweepInterval time.Duration
	LogLevel      log.Level
	LogFormat     string
}

// Load parses args with SCALECHESS_* environment variables as defaults.
func Load(args []string) (Config, error) {
	fs := flag.NewFlagSet("scalechess", flag.ContinueOnError)

	addr := fs.String("addr", getenv("SCALECHESS_ADDR", ":3000"), "listen address")
	origins := fs.String("allow-origins", getenv("SCALECHESS_ALLOW_ORIGINS", "http://localhost:5173"), "comma-separated CORS origins")
	ttl := fs.String("game-ttl", getenv("SCALECHESS_GAME_TTL", "30m"), "remove games idle this long with no connections (0 disables)")
	sweep := fs.String("sweep-interval", getenv("SCALECHESS_SWEEP_INTERVAL", "1m"), "how often idle games are swept")
	level := fs.String("log-level", getenv("SCALECHESS_LOG_LEVEL", "info"), "debug, info, warn, error or fatal")
	format := fs.String("log-format", getenv("SCALECHESS_LOG_FORMAT", "text"), "text or json")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		Addr:         *addr,
		AllowOrigins: *origins,
		LogFormat:    strings.ToLower(strings.TrimSpace(*format)),
	}

	var err error
	if cfg.GameTTL, err = time.ParseDuration(*ttl); err != nil {
		return Config{}, fmt.Errorf("game-ttl: %w", err)
	}
	if cfg.SweepInterval, err = time.ParseDuration(*sweep); err != nil {
		return Config{}, fmt.Errorf("sweep-interval: %w", err)
	}
	if cfg.SweepInterval <= 0 {
		return Config{}, fmt.Errorf("sweep-interval must be positive, got %s", cfg.SweepInterval)
	}
	if cfg.LogLevel, err = log.ParseLevel(*level); err != nil {
		return Config{}, fmt.Errorf("log-level: %w", err)
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return Config{}, fmt.Errorf("log-format must be text or json, got %q", cfg.LogFormat)
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
