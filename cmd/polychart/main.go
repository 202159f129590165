// Command polychart renders a live ASCII price chart for one Polymarket
// instrument in the terminal. It backfills recent history over REST,
// then follows the CLOB market websocket, reducing book snapshots and
// price changes into a time series that is redrawn twice a second.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alanyoungcy/polychart/internal/app"
	"github.com/alanyoungcy/polychart/internal/config"
	"github.com/alanyoungcy/polychart/internal/render"
)

func main() {
	configPath := flag.String("config", "polychart.toml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config %s: %v\n", *configPath, err)
		os.Exit(1)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}

	// The terminal is the chart surface, so logs go to a file instead of
	// stdout/stderr.
	logger, closeLog, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()
	slog.SetDefault(logger)

	logger.Info("polychart starting",
		slog.String("config", *configPath),
		slog.String("asset_id", cfg.Market.AssetID),
		slog.String("ws_host", cfg.Feed.WsHost),
	)

	application := app.New(cfg, os.Stdout, render.TerminalSize(int(os.Stdout.Fd())), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	render.EnterAltScreen(os.Stdout)
	runErr := application.Run(ctx)
	render.ExitAltScreen(os.Stdout)

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		logger.Error("exited with error", slog.String("error", runErr.Error()))
		fmt.Fprintf(os.Stderr, "fatal: %v\n", runErr)
		os.Exit(1)
	}

	logger.Info("polychart stopped")
}

// newLogger builds the root slog logger writing to the configured log
// file. An empty log_file discards logs entirely.
func newLogger(cfg *config.Config) (*slog.Logger, func(), error) {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	var w io.Writer = io.Discard
	closeLog := func() {}

	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		w = f
		closeLog = func() { _ = f.Close() }
	}

	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeLog, nil
}
