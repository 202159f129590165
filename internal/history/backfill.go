// Package history seeds the series store with historical prices before
// live ingestion starts.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/alanyoungcy/polychart/internal/domain"
	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
	"github.com/alanyoungcy/polychart/internal/series"
)

// syntheticSpread stands in for the unavailable bid/ask of historical
// points. It is split symmetrically around the traded price.
const syntheticSpread = 0.01

// Backfiller loads the historical price series for one instrument into
// the store.
type Backfiller struct {
	client   *polymarket.HistoryClient
	store    *series.Store
	assetID  string
	fidelity int
	logger   *slog.Logger
}

// New creates a Backfiller appending to the given store.
func New(client *polymarket.HistoryClient, store *series.Store, assetID string, fidelity int, logger *slog.Logger) *Backfiller {
	return &Backfiller{
		client:   client,
		store:    store,
		assetID:  assetID,
		fidelity: fidelity,
		logger:   logger.With(slog.String("component", "backfill")),
	}
}

// Backfill fetches hoursBack hours of history and appends one sample per
// historical point, in chronological order, with the synthetic spread and
// zero sizes. Backfill is best-effort: any failure is logged and yields
// 0, and must never prevent the live connection from starting. It returns
// the number of samples loaded.
func (b *Backfiller) Backfill(ctx context.Context, hoursBack int) int {
	b.logger.Info("backfilling history", slog.Int("hours", hoursBack))

	startTs := time.Now().Add(-time.Duration(hoursBack) * time.Hour).Unix()

	points, err := b.client.PricesHistory(ctx, b.assetID, startTs, b.fidelity)
	if err != nil {
		b.logger.Warn("history backfill failed", slog.String("error", err.Error()))
		return 0
	}

	for _, p := range points {
		b.store.Append(domain.Sample{
			Timestamp: p.T * 1000,
			Mid:       p.P,
			Spread:    syntheticSpread,
			Bid:       p.P - syntheticSpread/2,
			Ask:       p.P + syntheticSpread/2,
		})
	}

	b.logger.Info("history loaded", slog.Int("points", len(points)))
	return len(points)
}
