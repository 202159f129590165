package app

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	"github.com/alanyoungcy/polychart/internal/config"
	"github.com/alanyoungcy/polychart/internal/render"
)

// TestRunEndToEnd drives the whole pipeline against fake history and feed
// servers: the backfill seeds the store, the feed delivers one live book
// snapshot, and the render loop draws frames containing both.
func TestRunEndToEnd(t *testing.T) {
	now := time.Now()

	historySrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprintf(w, `{"history":[{"t":%d,"p":0.40},{"t":%d,"p":0.45}]}`,
			now.Add(-2*time.Hour).Unix(), now.Add(-1*time.Hour).Unix())
	}))
	defer historySrv.Close()

	upgrader := websocket.Upgrader{}
	feedSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer c.Close()
		if _, _, err := c.ReadMessage(); err != nil { // the subscription
			return
		}
		book := fmt.Sprintf(`{"event_type":"book","asset_id":"asset-1","timestamp":"%d",`+
			`"bids":[{"price":"0.50","size":"10"}],"asks":[{"price":"0.52","size":"8"}]}`,
			now.UnixMilli())
		if err := c.WriteMessage(websocket.TextMessage, []byte(book)); err != nil {
			return
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer feedSrv.Close()

	cfg := config.Defaults()
	cfg.Market.AssetID = "asset-1"
	cfg.Market.Label = "Integration market?"
	cfg.Feed.WsHost = "ws" + strings.TrimPrefix(feedSrv.URL, "http")
	cfg.History.ClobHost = historySrv.URL
	cfg.Chart.RefreshIntervalMs = 20
	require.NoError(t, cfg.Validate())

	var out bytes.Buffer
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := New(&cfg, &out, render.FixedSize(60, 20), logger)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	err := a.Run(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	frame := out.String()
	require.Contains(t, frame, "Integration market?")
	require.Contains(t, frame, "●")
	// The live snapshot (mid 0.51) is the newest point.
	require.Contains(t, frame, "yes: 51.0% | no: 49.0%")
}
