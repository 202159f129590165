package history

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
	"github.com/alanyoungcy/polychart/internal/series"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestBackfillSeedsStore(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "/prices-history", r.URL.Path)
		require.Equal(t, "asset-1", q.Get("market"))
		require.Equal(t, "11", q.Get("fidelity"))
		require.NotEmpty(t, q.Get("startTs"))

		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"history":[{"t":1000,"p":0.4},{"t":2000,"p":0.5}]}`)
	}))
	defer srv.Close()

	store := series.NewStore()
	b := New(polymarket.NewHistoryClient(srv.URL), store, "asset-1", 11, discardLogger())

	n := b.Backfill(context.Background(), 24)
	require.Equal(t, 2, n)
	require.Equal(t, 2, store.Len())

	got := store.Window(0)
	require.Equal(t, int64(1000000), got[0].Timestamp)
	require.Equal(t, 0.4, got[0].Mid)
	require.Equal(t, 0.01, got[0].Spread)
	require.InDelta(t, 0.395, got[0].Bid, 1e-9)
	require.InDelta(t, 0.405, got[0].Ask, 1e-9)
	require.Equal(t, 0.0, got[0].BidSize)
	require.Equal(t, 0.0, got[0].AskSize)
	require.Equal(t, int64(2000000), got[1].Timestamp)
}

func TestBackfillFailureYieldsZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := series.NewStore()
	b := New(polymarket.NewHistoryClient(srv.URL), store, "asset-1", 11, discardLogger())

	require.Equal(t, 0, b.Backfill(context.Background(), 24))
	require.Equal(t, 0, store.Len())
}

func TestBackfillUnreachableHostYieldsZero(t *testing.T) {
	store := series.NewStore()
	b := New(polymarket.NewHistoryClient("http://127.0.0.1:1"), store, "asset-1", 11, discardLogger())

	require.Equal(t, 0, b.Backfill(context.Background(), 24))
	require.Equal(t, 0, store.Len())
}
