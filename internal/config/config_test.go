package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultsAreValid(t *testing.T) {
	cfg := Defaults()
	require.NoError(t, cfg.Validate())
	require.Equal(t, "wss://ws-subscriptions-clob.polymarket.com/ws/market", cfg.Feed.WsHost)
	require.Equal(t, 24, cfg.Chart.WindowHours)
	require.Equal(t, 500, cfg.Chart.RefreshIntervalMs)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	require.Equal(t, Defaults().Feed.WsHost, cfg.Feed.WsHost)
}

func TestLoadAppliesFileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "polychart.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
log_level = "debug"

[market]
label = "From file"

[chart]
window_hours = 6
`), 0o644))

	t.Setenv("POLYCHART_FEED_WS_HOST", "wss://example.test/ws/market")
	t.Setenv("POLYCHART_CHART_WINDOW_HOURS", "12")

	cfg, err := Load(path)
	require.NoError(t, err)

	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "From file", cfg.Market.Label)
	// Environment wins over the file.
	require.Equal(t, 12, cfg.Chart.WindowHours)
	require.Equal(t, "wss://example.test/ws/market", cfg.Feed.WsHost)
	// Untouched fields keep their defaults.
	require.Equal(t, Defaults().History.ClobHost, cfg.History.ClobHost)
}

func TestValidateNamesInvalidFields(t *testing.T) {
	cfg := Defaults()
	cfg.Market.AssetID = ""
	cfg.Feed.WsHost = "http://not-a-ws-url"
	cfg.Chart.WindowHours = 0

	err := cfg.Validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "market.asset_id")
	require.Contains(t, err.Error(), "feed.ws_host")
	require.Contains(t, err.Error(), "chart.window_hours")
}
