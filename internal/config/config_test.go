package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// Test Load
func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "8080", cfg.Port)
		require.Equal(t, "info", cfg.LogLevel)
		require.Equal(t, 5*time.Minute, cfg.SweepInterval)
		require.Equal(t, uint64(3), cfg.MaxBidRetries)
		require.Equal(t, 25*time.Millisecond, cfg.RetryBackoff)
		require.True(t, cfg.WSEnabled)
		require.Equal(t, ":8080", cfg.Addr())
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv("PORT", "9090")
		t.Setenv("SWEEP_INTERVAL", "30s")
		t.Setenv("MAX_BID_RETRIES", "7")
		t.Setenv("WS_ENABLED", "false")

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "9090", cfg.Port)
		require.Equal(t, 30*time.Second, cfg.SweepInterval)
		require.Equal(t, uint64(7), cfg.MaxBidRetries)
		require.False(t, cfg.WSEnabled)
	})

	t.Run("yaml file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("port: \"7070\"\nlog_level: debug\n"), 0o600))
		t.Setenv("CONFIG_PATH", path)

		cfg, err := Load()
		require.NoError(t, err)
		require.Equal(t, "7070", cfg.Port)
		require.Equal(t, "debug", cfg.LogLevel)
		require.Equal(t, 5*time.Minute, cfg.SweepInterval, "unset keys keep their defaults")
	})

	t.Run("invalid sweep interval", func(t *testing.T) {
		t.Setenv("SWEEP_INTERVAL", "-1m")

		_, err := Load()
		require.Error(t, err)
	})
}
