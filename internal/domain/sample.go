// Package domain holds the core data types shared across polychart
// components. Types here carry no behavior beyond simple accessors.
package domain

import "time"

// Sample is one normalized point of the tracked instrument's time series.
// It is produced either by the live-feed reducer or by the history
// backfill, appended to the series store once, and never mutated.
//
// Mid is the midpoint between Bid and Ask and, for a prediction market,
// reads as an implied probability in [0, 1]. Spread is Ask - Bid.
type Sample struct {
	// Timestamp is the observation time in epoch milliseconds.
	Timestamp int64

	Mid    float64
	Spread float64
	Bid    float64
	Ask    float64

	// BidSize and AskSize are the top-of-book sizes when the sample comes
	// from a book snapshot. For price-change samples both carry the traded
	// size; for backfilled samples both are zero.
	BidSize float64
	AskSize float64
}

// Time returns the sample's timestamp as a time.Time.
func (s Sample) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}
