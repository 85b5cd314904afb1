// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/scorer.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Seasons
// --------------------------------------------------------------------------

// DefaultSeason is the season-start year used when nothing else is configured.
const DefaultSeason = 2025

// SeasonLabel renders a season-start year the way the upstream API expects
// it: 2024 -> "2024-25".
func SeasonLabel(seasonYear int) string {
	return fmt.Sprintf("%d-%02d", seasonYear, (seasonYear+1)%100)
}

// --------------------------------------------------------------------------
// Config
// --------------------------------------------------------------------------

// Config is populated from environment variables.
type Config struct {
	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting (inbound)
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration

	// Upstream statistics API
	StatsAPIBaseURL           string
	StatsAPITimeout           time.Duration
	StatsAPIRequestsPerMinute int

	// Reports
	CurrentSeason     int
	H2HMaxSeasonsBack int
	H2HFloorSeason    int
	ScanDelay         time.Duration
	LocalTimezone     string

	// Optional offline player catalog (JSON array of players)
	PlayersFile string

	MetricsEnabled bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	cfg := &Config{
		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    envLevel("LOG_LEVEL", slog.LevelInfo),

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
			"http://localhost:8501",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 60),
		RateLimitWindow:   envDuration("RATE_LIMIT_WINDOW", 60*time.Second),

		StatsAPIBaseURL:           strings.TrimRight(envOr("STATS_API_BASE_URL", "https://stats.nba.com/stats"), "/"),
		StatsAPITimeout:           envDuration("STATS_API_TIMEOUT", 30*time.Second),
		StatsAPIRequestsPerMinute: envInt("STATS_API_REQUESTS_PER_MINUTE", 60),

		CurrentSeason:     envInt("CURRENT_SEASON", DefaultSeason),
		H2HMaxSeasonsBack: envInt("H2H_MAX_SEASONS_BACK", 5),
		H2HFloorSeason:    envInt("H2H_FLOOR_SEASON", 2000),
		ScanDelay:         envDuration("SCAN_DELAY", 500*time.Millisecond),
		LocalTimezone:     envOr("LOCAL_TIMEZONE", "Europe/Lisbon"),

		PlayersFile: envOr("PLAYERS_FILE", ""),

		MetricsEnabled: envBool("METRICS_ENABLED", true),
	}

	if cfg.StatsAPIRequestsPerMinute <= 0 {
		return nil, fmt.Errorf("STATS_API_REQUESTS_PER_MINUTE must be positive, got %d", cfg.StatsAPIRequestsPerMinute)
	}
	if cfg.H2HMaxSeasonsBack <= 0 {
		return nil, fmt.Errorf("H2H_MAX_SEASONS_BACK must be positive, got %d", cfg.H2HMaxSeasonsBack)
	}
	if _, err := time.LoadLocation(cfg.LocalTimezone); err != nil {
		return nil, fmt.Errorf("LOCAL_TIMEZONE %q: %w", cfg.LocalTimezone, err)
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ValidSeason reports whether a season-start year can be queried: not older
// than the H2H floor and not later than next year.
func (c *Config) ValidSeason(season int) bool {
	return season >= c.H2HFloorSeason && season <= time.Now().Year()+1
}

// Location returns the configured local timezone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.LocalTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

// envDuration accepts Go duration strings ("500ms", "30s") or a bare number
// of seconds.
func envDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return fallback
}

func envLevel(key string, fallback slog.Level) slog.Level {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(v)); err != nil {
		return fallback
	}
	return lvl
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}
