// Package feed owns the live connection to the market websocket: it
// dials, subscribes, keeps the session alive, and reconnects on failure.
package feed

import (
	"context"
	"log/slog"
	"time"

	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
)

// Supervisor drives the connection lifecycle for one instrument's feed.
// Every failure short of context cancellation is non-fatal: the
// supervisor logs it and retries after a fixed delay, indefinitely. There
// is deliberately no backoff or retry cap; the chart should come back the
// moment the feed does.
type Supervisor struct {
	wsURL          string
	assetID        string
	pingInterval   time.Duration
	reconnectDelay time.Duration

	onBook        polymarket.BookHandler
	onPriceChange polymarket.PriceChangeHandler

	logger   *slog.Logger
	wsLogger *slog.Logger
}

// New creates a Supervisor for the given feed endpoint and instrument.
// The handlers receive every decoded event from the live session.
func New(wsURL, assetID string, pingInterval, reconnectDelay time.Duration, onBook polymarket.BookHandler, onPriceChange polymarket.PriceChangeHandler, logger *slog.Logger) *Supervisor {
	return &Supervisor{
		wsURL:          wsURL,
		assetID:        assetID,
		pingInterval:   pingInterval,
		reconnectDelay: reconnectDelay,
		onBook:         onBook,
		onPriceChange:  onPriceChange,
		logger:         logger.With(slog.String("component", "feed_supervisor")),
		wsLogger:       logger,
	}
}

// Run connects and processes the feed until ctx is cancelled, recreating
// the session after every drop. Each session gets a fresh client, so the
// previous session's keepalive timer is always torn down before the next
// attempt starts. Run returns ctx.Err() on shutdown.
func (s *Supervisor) Run(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := s.session(ctx, attempt)
		if ctx.Err() != nil {
			return ctx.Err()
		}

		s.logger.Warn("feed disconnected, reconnecting",
			slog.Int("attempt", attempt),
			slog.Duration("delay", s.reconnectDelay),
			slog.String("error", err.Error()),
		)

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(s.reconnectDelay):
		}
	}
}

// session runs one connect-subscribe-listen cycle and returns the error
// that ended it.
func (s *Supervisor) session(ctx context.Context, attempt int) error {
	client := polymarket.NewClient(s.wsURL, s.pingInterval, s.wsLogger)
	defer client.Close()

	client.OnBook(s.onBook)
	client.OnPriceChange(s.onPriceChange)

	if err := client.Dial(ctx); err != nil {
		return err
	}
	if err := client.Subscribe(s.assetID); err != nil {
		return err
	}

	s.logger.Info("feed connected",
		slog.Int("attempt", attempt),
		slog.String("asset_id", s.assetID),
	)

	return client.Listen(ctx)
}
