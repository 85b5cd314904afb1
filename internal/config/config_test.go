package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeasonLabel(t *testing.T) {
	assert.Equal(t, "2024-25", SeasonLabel(2024))
	assert.Equal(t, "1999-00", SeasonLabel(1999))
	assert.Equal(t, "2009-10", SeasonLabel(2009))
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.APIPort)
	assert.Equal(t, "https://stats.nba.com/stats", cfg.StatsAPIBaseURL)
	assert.Equal(t, DefaultSeason, cfg.CurrentSeason)
	assert.Equal(t, 5, cfg.H2HMaxSeasonsBack)
	assert.Equal(t, 2000, cfg.H2HFloorSeason)
	assert.Equal(t, 500*time.Millisecond, cfg.ScanDelay)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
	assert.True(t, cfg.MetricsEnabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9090")
	t.Setenv("STATS_API_BASE_URL", "http://localhost:1234/stats/")
	t.Setenv("STATS_API_TIMEOUT", "5")
	t.Setenv("SCAN_DELAY", "250ms")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("METRICS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.APIPort)
	assert.Equal(t, "http://localhost:1234/stats", cfg.StatsAPIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.StatsAPITimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.ScanDelay)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowOrigins)
	assert.False(t, cfg.MetricsEnabled)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Run("requests per minute", func(t *testing.T) {
		t.Setenv("STATS_API_REQUESTS_PER_MINUTE", "0")
		_, err := Load()
		assert.Error(t, err)
	})
	t.Run("timezone", func(t *testing.T) {
		t.Setenv("LOCAL_TIMEZONE", "Mars/Olympus")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestValidSeason(t *testing.T) {
	cfg := &Config{H2HFloorSeason: 2000}
	assert.True(t, cfg.ValidSeason(2000))
	assert.True(t, cfg.ValidSeason(time.Now().Year()+1))
	assert.False(t, cfg.ValidSeason(1999))
	assert.False(t, cfg.ValidSeason(time.Now().Year()+2))
}
