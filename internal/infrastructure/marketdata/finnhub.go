package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vitos/stock_level_scanner/internal/domain"
)

const (
	FinnhubBaseURL = "https://finnhub.io/api/v1"
	FinnhubWSURL   = "wss://ws.finnhub.io"
)

// FinnhubAdapter talks to the Finnhub REST API. Authentication is a
// token header on every request.
type FinnhubAdapter struct {
	token   string
	baseURL string
	client  *http.Client
}

func NewFinnhubAdapter(token, baseURL string) *FinnhubAdapter {
	if baseURL == "" {
		baseURL = FinnhubBaseURL
	}
	return &FinnhubAdapter{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *FinnhubAdapter) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-Finnhub-Token", f.token)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("API error %d: %s", resp.StatusCode, string(body))
	}

	return body, nil
}

// GetQuote fetches the daily OHLC bar for a symbol.
func (f *FinnhubAdapter) GetQuote(ctx context.Context, symbol, resolution string) (domain.Quote, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("resolution", resolution)

	body, err := f.get(ctx, "/quote", params)
	if err != nil {
		return domain.Quote{}, err
	}

	var quote domain.Quote
	if err := json.Unmarshal(body, &quote); err != nil {
		return domain.Quote{}, fmt.Errorf("decode quote: %w", err)
	}
	return quote, nil
}

// GetSupportResistance fetches the detected technical levels for a
// symbol. Order is whatever the provider returns.
func (f *FinnhubAdapter) GetSupportResistance(ctx context.Context, symbol, resolution string) ([]float64, error) {
	params := url.Values{}
	params.Set("symbol", symbol)
	params.Set("resolution", resolution)

	body, err := f.get(ctx, "/scan/support-resistance", params)
	if err != nil {
		return nil, err
	}

	var result struct {
		Levels []float64 `json:"levels"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode levels: %w", err)
	}
	return result.Levels, nil
}
