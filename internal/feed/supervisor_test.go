package feed

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/alanyoungcy/polychart/internal/platform/polymarket"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// feedServer accepts websocket connections, records each subscription it
// receives, optionally serves canned frames, then drops the connection.
func feedServer(t *testing.T, frames []string, conns, subs *atomic.Int32) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		conns.Add(1)

		_, raw, err := c.ReadMessage()
		if err != nil {
			return
		}
		if gjson.GetBytes(raw, "type").String() == "market" && gjson.GetBytes(raw, "assets_ids.0").String() == "asset-1" {
			subs.Add(1)
		}

		for _, frame := range frames {
			if err := c.WriteMessage(websocket.TextMessage, []byte(frame)); err != nil {
				return
			}
		}
	}))
}

func wsURL(srv *httptest.Server) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestSupervisorReconnectsAfterClose(t *testing.T) {
	var conns, subs atomic.Int32
	srv := feedServer(t, nil, &conns, &subs)
	defer srv.Close()

	sup := New(wsURL(srv), "asset-1", time.Second, 20*time.Millisecond, nil, nil, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 400*time.Millisecond)
	defer cancel()

	err := sup.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	// The server drops every session right after the subscribe, so the
	// supervisor must have dialed (and re-subscribed) repeatedly.
	require.GreaterOrEqual(t, conns.Load(), int32(2))
	require.GreaterOrEqual(t, subs.Load(), int32(2))
}

func TestSupervisorDispatchesEvents(t *testing.T) {
	frames := []string{
		`{"event_type":"book","asset_id":"asset-1","timestamp":"1700000000000",` +
			`"bids":[{"price":"0.40","size":"10"}],"asks":[{"price":"0.42","size":"8"}]}`,
		`[{"event_type":"price_change","timestamp":"1700000001000",` +
			`"price_changes":[{"asset_id":"asset-1","size":"5","best_bid":"0.33","best_ask":"0.35"}]}]`,
	}

	var conns, subs atomic.Int32
	srv := feedServer(t, frames, &conns, &subs)
	defer srv.Close()

	var books, changes atomic.Int32
	sup := New(wsURL(srv), "asset-1", time.Second, 50*time.Millisecond,
		func(m *polymarket.BookMessage) {
			require.Equal(t, "asset-1", m.AssetID)
			books.Add(1)
		},
		func(ev *polymarket.PriceChangeEvent) {
			require.Len(t, ev.PriceChanges, 1)
			changes.Add(1)
		},
		discardLogger(),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := sup.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	require.GreaterOrEqual(t, books.Load(), int32(1))
	require.GreaterOrEqual(t, changes.Load(), int32(1))
}

func TestSupervisorRetriesWhenEndpointIsDown(t *testing.T) {
	var dials atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		dials.Add(1)
		http.Error(w, "no upgrade here", http.StatusBadRequest)
	}))
	defer srv.Close()

	sup := New(wsURL(srv), "asset-1", time.Second, 20*time.Millisecond, nil, nil, discardLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	err := sup.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.GreaterOrEqual(t, dials.Load(), int32(2))
}
