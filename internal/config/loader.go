package config

import (
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies POLYCHART_* environment variable overrides,
// and returns the final Config. A missing config file is not an error:
// the defaults plus environment overrides are enough to run the chart.
// The returned Config has NOT been validated; the caller should invoke
// Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known POLYCHART_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e.
// not empty).
func applyEnvOverrides(cfg *Config) {
	// ── Market ──
	setStr(&cfg.Market.AssetID, "POLYCHART_MARKET_ASSET_ID")
	setStr(&cfg.Market.ConditionID, "POLYCHART_MARKET_CONDITION_ID")
	setStr(&cfg.Market.Label, "POLYCHART_MARKET_LABEL")

	// ── Feed ──
	setStr(&cfg.Feed.WsHost, "POLYCHART_FEED_WS_HOST")
	setStr(&cfg.Feed.WsHost, "POLYMARKET_WS_URL") // compatibility alias
	setInt(&cfg.Feed.PingIntervalSec, "POLYCHART_FEED_PING_INTERVAL_SEC")
	setInt(&cfg.Feed.ReconnectDelaySec, "POLYCHART_FEED_RECONNECT_DELAY_SEC")

	// ── History ──
	setStr(&cfg.History.ClobHost, "POLYCHART_HISTORY_CLOB_HOST")
	setInt(&cfg.History.HoursBack, "POLYCHART_HISTORY_HOURS_BACK")
	setInt(&cfg.History.Fidelity, "POLYCHART_HISTORY_FIDELITY")

	// ── Chart ──
	setInt(&cfg.Chart.WindowHours, "POLYCHART_CHART_WINDOW_HOURS")
	setInt(&cfg.Chart.RefreshIntervalMs, "POLYCHART_CHART_REFRESH_INTERVAL_MS")

	// ── Top-level ──
	setStr(&cfg.LogLevel, "POLYCHART_LOG_LEVEL")
	setStr(&cfg.LogFile, "POLYCHART_LOG_FILE")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}
