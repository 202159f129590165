// Package series holds the in-memory time series of samples for the
// tracked instrument.
package series

import (
	"sync"

	"github.com/alanyoungcy/polychart/internal/domain"
)

// Store is an append-only, time-ordered buffer of samples. It is the sole
// owner of the series: producers append, the renderer reads windows, and
// nothing holds a reference into the backing slice.
//
// Append performs no ordering check; backfilled history is appended in
// full before live ingestion starts, and live samples are trusted to
// arrive in feed order. The buffer grows for the process lifetime.
type Store struct {
	mu      sync.RWMutex
	samples []domain.Sample
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Append adds one sample to the end of the series.
func (s *Store) Append(sample domain.Sample) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.samples = append(s.samples, sample)
}

// Window returns, in stored order, every sample whose timestamp is at or
// after sinceMs (epoch milliseconds). The returned slice is a copy and
// safe to mutate. An empty store or an empty window both yield nil.
func (s *Store) Window(sinceMs int64) []domain.Sample {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Sample
	for _, sample := range s.samples {
		if sample.Timestamp >= sinceMs {
			out = append(out, sample)
		}
	}
	return out
}

// Len returns the total number of samples in the store.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.samples)
}
