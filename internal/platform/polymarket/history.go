package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

// HistoryClient is the REST client for the CLOB prices-history endpoint.
type HistoryClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewHistoryClient creates a prices-history client.
//
// baseURL is the CLOB API root, e.g. "https://clob.polymarket.com".
func NewHistoryClient(baseURL string) *HistoryClient {
	return &HistoryClient{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// PricesHistory fetches the price series for one instrument from startTs
// (epoch seconds) to now at the given sampling fidelity.
func (h *HistoryClient) PricesHistory(ctx context.Context, assetID string, startTs int64, fidelity int) ([]PricePoint, error) {
	params := url.Values{}
	params.Set("startTs", strconv.FormatInt(startTs, 10))
	params.Set("market", assetID)
	params.Set("fidelity", strconv.Itoa(fidelity))

	reqURL := h.baseURL + "/prices-history?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("polymarket/history: create request: %w", err)
	}

	resp, err := h.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("polymarket/history: request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("polymarket/history: read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("polymarket/history: HTTP %d: %s", resp.StatusCode, string(body))
	}

	var hist PriceHistory
	if err := json.Unmarshal(body, &hist); err != nil {
		return nil, fmt.Errorf("polymarket/history: decode response: %w", err)
	}

	return hist.History, nil
}
