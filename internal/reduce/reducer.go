// Package reduce turns raw feed events into normalized samples for the
// series store. Reduction is pure; the Reducer wrapper adds the single
// side effect of appending each produced sample.
package reduce

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/alanyoungcy/polychart/internal/domain"
	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
	"github.com/alanyoungcy/polychart/internal/series"
)

var (
	one = decimal.NewFromInt(1)
	two = decimal.NewFromInt(2)

	// maxBookSpread is the widest spread a book snapshot may imply before
	// the sample is rejected. Transient crossed or empty-side books show
	// up as absurdly wide spreads; anything above roughly half the price
	// range is treated as one of those. The price-change path is not
	// filtered: there both sides come from one authoritative delta.
	maxBookSpread = decimal.RequireFromString("0.499")
)

// ReduceBook turns a full book snapshot into a sample. It returns false
// when the snapshot is for a different instrument or its implied spread
// exceeds maxBookSpread. An empty bid side defaults to price 0, an empty
// ask side to price 1; sizes for a missing side are 0.
func ReduceBook(assetID string, msg *polymarket.BookMessage) (domain.Sample, bool) {
	if msg.AssetID != assetID {
		return domain.Sample{}, false
	}

	bestBid, bidSize := decimal.Zero, decimal.Zero
	if len(msg.Bids) > 0 {
		bestBid = parseDecimal(msg.Bids[0].Price, decimal.Zero)
		bidSize = parseDecimal(msg.Bids[0].Size, decimal.Zero)
	}

	bestAsk, askSize := one, decimal.Zero
	if len(msg.Asks) > 0 {
		bestAsk = parseDecimal(msg.Asks[0].Price, one)
		askSize = parseDecimal(msg.Asks[0].Size, decimal.Zero)
	}

	spread := bestAsk.Sub(bestBid)
	if spread.GreaterThan(maxBookSpread) {
		return domain.Sample{}, false
	}

	mid := bestBid.Add(bestAsk).Div(two)

	return domain.Sample{
		Timestamp: parseMillis(msg.Timestamp),
		Mid:       mid.InexactFloat64(),
		Spread:    spread.InexactFloat64(),
		Bid:       bestBid.InexactFloat64(),
		Ask:       bestAsk.InexactFloat64(),
		BidSize:   bidSize.InexactFloat64(),
		AskSize:   askSize.InexactFloat64(),
	}, true
}

// ReducePriceChange turns a price-change batch into a sample from the
// first entry matching the tracked instrument. It returns false when the
// batch holds no such entry. The event carries no independent depth, so
// the traded size is recorded as both bid and ask size.
func ReducePriceChange(assetID string, ev *polymarket.PriceChangeEvent) (domain.Sample, bool) {
	var change *polymarket.PriceChange
	for i := range ev.PriceChanges {
		if ev.PriceChanges[i].AssetID == assetID {
			change = &ev.PriceChanges[i]
			break
		}
	}
	if change == nil {
		return domain.Sample{}, false
	}

	bestBid := parseDecimal(change.BestBid, decimal.Zero)
	bestAsk := parseDecimal(change.BestAsk, decimal.Zero)
	size := parseDecimal(change.Size, decimal.Zero)

	mid := bestBid.Add(bestAsk).Div(two)
	spread := bestAsk.Sub(bestBid)

	return domain.Sample{
		Timestamp: parseMillis(ev.Timestamp),
		Mid:       mid.InexactFloat64(),
		Spread:    spread.InexactFloat64(),
		Bid:       bestBid.InexactFloat64(),
		Ask:       bestAsk.InexactFloat64(),
		BidSize:   size.InexactFloat64(),
		AskSize:   size.InexactFloat64(),
	}, true
}

// Reducer binds the pure reduction functions to a target instrument and a
// store. Its handlers are shaped to plug straight into the feed client.
type Reducer struct {
	assetID string
	store   *series.Store
	logger  *slog.Logger
}

// New creates a Reducer appending to the given store.
func New(assetID string, store *series.Store, logger *slog.Logger) *Reducer {
	return &Reducer{
		assetID: assetID,
		store:   store,
		logger:  logger.With(slog.String("component", "reducer")),
	}
}

// HandleBook reduces a book snapshot and appends the sample, if any.
func (r *Reducer) HandleBook(msg *polymarket.BookMessage) {
	sample, ok := ReduceBook(r.assetID, msg)
	if !ok {
		return
	}
	r.store.Append(sample)
	r.logger.Debug("book sample",
		slog.Float64("mid", sample.Mid),
		slog.Float64("spread", sample.Spread),
	)
}

// HandlePriceChange reduces a price-change batch and appends the sample,
// if any.
func (r *Reducer) HandlePriceChange(ev *polymarket.PriceChangeEvent) {
	sample, ok := ReducePriceChange(r.assetID, ev)
	if !ok {
		return
	}
	r.store.Append(sample)
	r.logger.Debug("trade sample",
		slog.Float64("mid", sample.Mid),
		slog.Float64("size", sample.BidSize),
	)
}

// parseDecimal parses a decimal string, falling back to def when the
// field is empty or unparseable.
func parseDecimal(s string, def decimal.Decimal) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return def
	}
	return d
}

// parseMillis parses an epoch-milliseconds string, falling back to the
// current time.
func parseMillis(s string) int64 {
	ms, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return time.Now().UnixMilli()
	}
	return ms
}
