// Package app provides the top-level lifecycle for polychart. It wires
// the series store, history backfill, reducer, feed supervisor, and
// render loop together and runs them until shutdown.
package app

import (
	"context"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alanyoungcy/polychart/internal/config"
	"github.com/alanyoungcy/polychart/internal/feed"
	"github.com/alanyoungcy/polychart/internal/history"
	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
	"github.com/alanyoungcy/polychart/internal/reduce"
	"github.com/alanyoungcy/polychart/internal/render"
	"github.com/alanyoungcy/polychart/internal/series"
)

// App is the root application object.
type App struct {
	cfg    *config.Config
	out    io.Writer
	size   render.SizeFunc
	logger *slog.Logger
}

// New creates an App rendering to out with the given terminal size
// source.
func New(cfg *config.Config, out io.Writer, size render.SizeFunc, logger *slog.Logger) *App {
	return &App{
		cfg:    cfg,
		out:    out,
		size:   size,
		logger: logger.With(slog.String("component", "app")),
	}
}

// Run wires all components and blocks until ctx is cancelled. The
// historical backfill runs to completion first, so every live sample
// lands after the seeded history; then the feed supervisor and the
// render loop run concurrently until shutdown.
func (a *App) Run(ctx context.Context) error {
	a.logger.InfoContext(ctx, "starting",
		slog.String("asset_id", a.cfg.Market.AssetID),
		slog.String("market", a.cfg.Market.ConditionID),
		slog.String("label", a.cfg.Market.Label),
	)

	store := series.NewStore()

	backfiller := history.New(
		polymarket.NewHistoryClient(a.cfg.History.ClobHost),
		store,
		a.cfg.Market.AssetID,
		a.cfg.History.Fidelity,
		a.logger,
	)
	backfiller.Backfill(ctx, a.cfg.History.HoursBack)

	reducer := reduce.New(a.cfg.Market.AssetID, store, a.logger)

	supervisor := feed.New(
		a.cfg.Feed.WsHost,
		a.cfg.Market.AssetID,
		time.Duration(a.cfg.Feed.PingIntervalSec)*time.Second,
		time.Duration(a.cfg.Feed.ReconnectDelaySec)*time.Second,
		reducer.HandleBook,
		reducer.HandlePriceChange,
		a.logger,
	)

	renderer := render.NewRenderer(store, a.cfg.Market.Label, a.cfg.Chart.WindowHours, a.size, a.logger)
	loop := render.NewLoop(renderer, a.out, time.Duration(a.cfg.Chart.RefreshIntervalMs)*time.Millisecond, a.logger)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error { return supervisor.Run(ctx) })
	g.Go(func() error { return loop.Run(ctx) })

	return g.Wait()
}
