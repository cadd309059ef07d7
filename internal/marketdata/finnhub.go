package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/httputil"
	"github.com/stockpick/advisor/pkg/logger"
)

// finnhubTimeout bounds every primary-source call; a timed-out call is
// treated exactly like a failed one and triggers fallback.
const finnhubTimeout = 20 * time.Second

// FinnhubClient is the token-authenticated primary data source. The token
// travels in a request header only, so URLs and error bodies never carry it.
type FinnhubClient struct {
	baseURL    string
	httpClient *httputil.Client
	logger     *logger.Logger
	now        func() time.Time
}

// NewFinnhubClient creates the primary source client.
// Finnhub's free tier allows 30 requests/second; we stay under it.
func NewFinnhubClient(cfg config.FinnhubConfig, log *logger.Logger) *FinnhubClient {
	httpClient := httputil.New(log, finnhubTimeout).
		WithRateLimit(20, 20).
		WithHeader("X-Finnhub-Token", cfg.Token)

	return &FinnhubClient{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     log,
		now:        time.Now,
	}
}

// Name identifies the source in logs and fallback diagnostics.
func (c *FinnhubClient) Name() string { return "finnhub" }

// candleResponse is the candle endpoint payload. The status field is the
// success criterion: anything but "ok" (e.g. "no_data") means no usable data.
type candleResponse struct {
	Status string    `json:"s"`
	Closes []float64 `json:"c"`
	Highs  []float64 `json:"h"`
	Lows   []float64 `json:"l"`
}

// Daily fetches daily candles for the trailing lookback window using
// explicit unix-time bounds.
func (c *FinnhubClient) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	end := c.now().UTC().Unix()
	start := end - int64(lookbackDays)*86400

	endpoint := fmt.Sprintf("%s/stock/candle?symbol=%s&resolution=D&from=%d&to=%d",
		c.baseURL, url.QueryEscape(symbol), start, end)

	var payload candleResponse
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return contracts.PriceSeries{}, err
	}

	if payload.Status != "ok" {
		return contracts.PriceSeries{}, fmt.Errorf("finnhub candles %s: status %q", symbol, payload.Status)
	}

	return contracts.PriceSeries{
		Symbol: symbol,
		Closes: payload.Closes,
		Highs:  payload.Highs,
		Lows:   payload.Lows,
	}, nil
}

// Quote returns the current price for a symbol.
func (c *FinnhubClient) Quote(ctx context.Context, symbol string) (float64, error) {
	endpoint := fmt.Sprintf("%s/quote?symbol=%s", c.baseURL, url.QueryEscape(symbol))

	var payload struct {
		Current float64 `json:"c"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return 0, err
	}

	return payload.Current, nil
}

// Search looks up symbol candidates for a free-text ticker/ISIN/name query.
func (c *FinnhubClient) Search(ctx context.Context, query string) ([]contracts.SymbolMatch, error) {
	endpoint := fmt.Sprintf("%s/search?q=%s", c.baseURL, url.QueryEscape(query))

	var payload struct {
		Result []contracts.SymbolMatch `json:"result"`
	}
	if err := c.getJSON(ctx, endpoint, &payload); err != nil {
		return nil, err
	}

	return payload.Result, nil
}

func (c *FinnhubClient) getJSON(ctx context.Context, endpoint string, dest interface{}) error {
	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("finnhub request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("finnhub read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return contracts.NewUpstreamError(c.Name(), resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("finnhub decode: %w", err)
	}

	return nil
}
