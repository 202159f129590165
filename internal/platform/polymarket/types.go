package polymarket

// --------------------------------------------------------------------------
// WebSocket DTOs
// --------------------------------------------------------------------------

// Event type discriminators carried in the "event_type" field of every
// inbound feed message.
const (
	EventTypeBook        = "book"
	EventTypePriceChange = "price_change"
)

// OrderLevel is a single bid/ask level quote. Price and size are
// transmitted as decimal strings; consumers are responsible for parsing.
type OrderLevel struct {
	Price string `json:"price"`
	Size  string `json:"size"`
}

// BookMessage is a full orderbook snapshot for one instrument at one
// instant, delivered over the market websocket. Bids and asks are ordered
// best price first.
type BookMessage struct {
	Market         string       `json:"market"`
	AssetID        string       `json:"asset_id"`
	Timestamp      string       `json:"timestamp"` // epoch milliseconds
	Hash           string       `json:"hash"`
	Bids           []OrderLevel `json:"bids"`
	Asks           []OrderLevel `json:"asks"`
	EventType      string       `json:"event_type"`
	LastTradePrice string       `json:"last_trade_price"`
}

// PriceChange is one incremental trade/level update inside a
// PriceChangeEvent batch.
type PriceChange struct {
	AssetID string `json:"asset_id"`
	Price   string `json:"price"`
	Size    string `json:"size"`
	Side    string `json:"side"` // "BUY" or "SELL"
	Hash    string `json:"hash"`
	BestBid string `json:"best_bid"`
	BestAsk string `json:"best_ask"`
}

// PriceChangeEvent is a batch of incremental updates sharing one
// timestamp. The batch may cover several instruments; consumers filter by
// asset ID.
type PriceChangeEvent struct {
	Market       string        `json:"market"`
	PriceChanges []PriceChange `json:"price_changes"`
	Timestamp    string        `json:"timestamp"` // epoch milliseconds
	EventType    string        `json:"event_type"`
}

// --------------------------------------------------------------------------
// Outbound commands
// --------------------------------------------------------------------------

// SubscribeCommand is the JSON payload sent once after connecting to
// declare interest in a set of instruments on the market channel.
type SubscribeCommand struct {
	AssetsIDs []string `json:"assets_ids"`
	Type      string   `json:"type"` // "market"
}

// pingMessage is the application-level keepalive the feed expects while a
// subscription is active.
type pingMessage struct {
	Type string `json:"type"` // "ping"
}

// --------------------------------------------------------------------------
// REST DTOs
// --------------------------------------------------------------------------

// PricePoint is one historical observation from the prices-history
// endpoint: T is epoch seconds, P the traded price.
type PricePoint struct {
	T int64   `json:"t"`
	P float64 `json:"p"`
}

// PriceHistory is the response envelope of GET /prices-history.
type PriceHistory struct {
	History []PricePoint `json:"history"`
}
