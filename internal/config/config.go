// Package config defines the configuration for the polychart terminal
// chart and provides validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a
// TOML file and then optionally overridden by POLYCHART_* environment
// variables.
type Config struct {
	Market   MarketConfig  `toml:"market"`
	Feed     FeedConfig    `toml:"feed"`
	History  HistoryConfig `toml:"history"`
	Chart    ChartConfig   `toml:"chart"`
	LogLevel string        `toml:"log_level"`
	LogFile  string        `toml:"log_file"`
}

// MarketConfig identifies the single instrument the chart tracks.
type MarketConfig struct {
	// AssetID is the CLOB token ID of the tracked outcome.
	AssetID string `toml:"asset_id"`

	// ConditionID is the parent market's condition hash. Informational
	// only; it appears in the startup log line.
	ConditionID string `toml:"condition_id"`

	// Label is the human-readable market question shown as the chart
	// title.
	Label string `toml:"label"`
}

// FeedConfig holds the live websocket feed parameters.
type FeedConfig struct {
	WsHost            string `toml:"ws_host"`
	PingIntervalSec   int    `toml:"ping_interval_sec"`
	ReconnectDelaySec int    `toml:"reconnect_delay_sec"`
}

// HistoryConfig holds the historical backfill parameters.
type HistoryConfig struct {
	ClobHost  string `toml:"clob_host"`
	HoursBack int    `toml:"hours_back"`
	Fidelity  int    `toml:"fidelity"`
}

// ChartConfig holds the rendering parameters.
type ChartConfig struct {
	WindowHours       int `toml:"window_hours"`
	RefreshIntervalMs int `toml:"refresh_interval_ms"`
}

// Defaults returns a Config populated with the built-in defaults. These
// match the public Polymarket endpoints and a 24-hour chart window.
func Defaults() Config {
	return Config{
		Market: MarketConfig{
			AssetID:     "82282239328474018205105491929033644496357668579127643134512317986090887443137",
			ConditionID: "0x1e17e60a28b3f9ddb668c5fac7b225095a5734a3825cf013659166045e94322f",
			Label:       "Will X be banned in the UK by March 31?",
		},
		Feed: FeedConfig{
			WsHost:            "wss://ws-subscriptions-clob.polymarket.com/ws/market",
			PingIntervalSec:   30,
			ReconnectDelaySec: 3,
		},
		History: HistoryConfig{
			ClobHost:  "https://clob.polymarket.com",
			HoursBack: 24,
			Fidelity:  11,
		},
		Chart: ChartConfig{
			WindowHours:       24,
			RefreshIntervalMs: 500,
		},
		LogLevel: "info",
		LogFile:  "polychart.log",
	}
}

// Validate checks the configuration for values the application cannot run
// with. It returns a descriptive error naming every invalid field.
func (c *Config) Validate() error {
	var problems []string

	if c.Market.AssetID == "" {
		problems = append(problems, "market.asset_id must be set")
	}
	if c.Feed.WsHost == "" {
		problems = append(problems, "feed.ws_host must be set")
	}
	if !strings.HasPrefix(c.Feed.WsHost, "ws://") && !strings.HasPrefix(c.Feed.WsHost, "wss://") {
		problems = append(problems, "feed.ws_host must be a ws:// or wss:// URL")
	}
	if c.Feed.PingIntervalSec <= 0 {
		problems = append(problems, "feed.ping_interval_sec must be positive")
	}
	if c.Feed.ReconnectDelaySec <= 0 {
		problems = append(problems, "feed.reconnect_delay_sec must be positive")
	}
	if c.History.ClobHost == "" {
		problems = append(problems, "history.clob_host must be set")
	}
	if c.History.HoursBack < 0 {
		problems = append(problems, "history.hours_back must not be negative")
	}
	if c.Chart.WindowHours <= 0 {
		problems = append(problems, "chart.window_hours must be positive")
	}
	if c.Chart.RefreshIntervalMs <= 0 {
		problems = append(problems, "chart.refresh_interval_ms must be positive")
	}

	if len(problems) > 0 {
		return fmt.Errorf("config: %s", strings.Join(problems, "; "))
	}
	return nil
}
