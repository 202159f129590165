// Package polymarket contains the wire-level types and clients for the
// Polymarket CLOB market-data surfaces: the real-time websocket feed and
// the historical prices REST endpoint.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"

	"github.com/alanyoungcy/polychart/internal/domain"
)

const (
	// writeWait is the time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// handshakeTimeout bounds the websocket dial.
	handshakeTimeout = 15 * time.Second
)

// BookHandler is called for every full orderbook snapshot on the feed.
type BookHandler func(*BookMessage)

// PriceChangeHandler is called for every price-change batch on the feed.
type PriceChangeHandler func(*PriceChangeEvent)

// Client is a single-connection websocket client for the Polymarket CLOB
// market feed. It has no reconnect logic of its own; the feed supervisor
// owns the connection lifecycle and creates a fresh Client per attempt.
type Client struct {
	wsURL        string
	pingInterval time.Duration
	logger       *slog.Logger

	mu     sync.Mutex
	conn   *websocket.Conn
	closed bool

	onBook        BookHandler
	onPriceChange PriceChangeHandler
}

// NewClient creates a client for the given websocket URL. pingInterval
// controls how often the application-level keepalive is sent while
// listening.
func NewClient(wsURL string, pingInterval time.Duration, logger *slog.Logger) *Client {
	return &Client{
		wsURL:        wsURL,
		pingInterval: pingInterval,
		logger:       logger.With(slog.String("component", "polymarket_ws")),
	}
}

// OnBook registers the handler invoked for each book snapshot. Must be
// called before Listen.
func (c *Client) OnBook(h BookHandler) { c.onBook = h }

// OnPriceChange registers the handler invoked for each price-change
// batch. Must be called before Listen.
func (c *Client) OnPriceChange(h PriceChangeHandler) { c.onPriceChange = h }

// Dial establishes the websocket connection.
func (c *Client) Dial(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return fmt.Errorf("polymarket/ws: dial: %w", domain.ErrClosed)
	}

	dialer := websocket.Dialer{
		HandshakeTimeout: handshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, c.wsURL, nil)
	if err != nil {
		return fmt.Errorf("polymarket/ws: connect: %w", err)
	}

	c.conn = conn
	return nil
}

// Subscribe declares interest in the given instruments on the market
// channel. Must be called after Dial and before Listen.
func (c *Client) Subscribe(assetIDs ...string) error {
	cmd := SubscribeCommand{
		AssetsIDs: assetIDs,
		Type:      "market",
	}
	if err := c.writeJSON(cmd); err != nil {
		return fmt.Errorf("polymarket/ws: subscribe: %w", err)
	}
	return nil
}

// Listen reads feed messages and dispatches them to the registered
// handlers until the connection drops or ctx is cancelled. It also runs
// the keepalive loop for the duration of the call. Listen always returns
// a non-nil error: the read error that ended the session, or ctx.Err().
func (c *Client) Listen(ctx context.Context) error {
	c.mu.Lock()
	conn := c.conn
	c.mu.Unlock()

	if conn == nil {
		return fmt.Errorf("polymarket/ws: listen: not connected")
	}

	done := make(chan struct{})
	defer close(done)

	go c.pingLoop(ctx, done)

	// Unblock the read loop when the context is cancelled.
	go func() {
		select {
		case <-ctx.Done():
			_ = c.Close()
		case <-done:
		}
	}()

	for {
		_, raw, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("polymarket/ws: read: %w", err)
		}
		c.dispatch(raw)
	}
}

// Close shuts down the connection. Safe to call multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return nil
	}
	c.closed = true

	if c.conn != nil {
		_ = c.conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		)
		return c.conn.Close()
	}
	return nil
}

// --------------------------------------------------------------------------
// Internal methods
// --------------------------------------------------------------------------

// pingLoop sends the application-level {"type":"ping"} keepalive at the
// configured interval until the session ends.
func (c *Client) pingLoop(ctx context.Context, done <-chan struct{}) {
	ticker := time.NewTicker(c.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			if err := c.writeJSON(pingMessage{Type: "ping"}); err != nil {
				c.logger.Warn("keepalive write failed", slog.String("error", err.Error()))
				return
			}
		}
	}
}

// writeJSON marshals v and writes it as a text frame under the write lock.
func (c *Client) writeJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn == nil || c.closed {
		return domain.ErrClosed
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// dispatch parses a raw frame, which may hold a single event object or an
// array of them, and routes each object by its event_type tag. Malformed
// payloads and unknown event types are logged and dropped.
func (c *Client) dispatch(raw []byte) {
	if !gjson.ValidBytes(raw) {
		c.logger.Warn("dropping malformed feed message", slog.Int("bytes", len(raw)))
		return
	}

	parsed := gjson.ParseBytes(raw)
	if parsed.IsArray() {
		parsed.ForEach(func(_, item gjson.Result) bool {
			c.handleEvent([]byte(item.Raw))
			return true
		})
		return
	}

	c.handleEvent(raw)
}

// handleEvent decodes one event object and invokes the matching handler.
func (c *Client) handleEvent(raw []byte) {
	eventType := gjson.GetBytes(raw, "event_type").String()

	switch eventType {
	case EventTypeBook:
		var msg BookMessage
		if err := json.Unmarshal(raw, &msg); err != nil {
			c.logger.Warn("dropping undecodable book message", slog.String("error", err.Error()))
			return
		}
		if c.onBook != nil {
			c.onBook(&msg)
		}

	case EventTypePriceChange:
		var ev PriceChangeEvent
		if err := json.Unmarshal(raw, &ev); err != nil {
			c.logger.Warn("dropping undecodable price_change message", slog.String("error", err.Error()))
			return
		}
		if c.onPriceChange != nil {
			c.onPriceChange(&ev)
		}

	default:
		c.logger.Debug("ignoring feed event", slog.String("event_type", eventType))
	}
}
