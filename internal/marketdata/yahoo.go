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

const yahooTimeout = 20 * time.Second

// YahooClient is the unauthenticated secondary data source. It speaks a
// different range vocabulary than the primary and returns nullable arrays
// that must be realigned before use.
type YahooClient struct {
	baseURL    string
	httpClient *httputil.Client
	logger     *logger.Logger
}

// NewYahooClient creates the fallback source client.
func NewYahooClient(cfg config.YahooConfig, log *logger.Logger) *YahooClient {
	httpClient := httputil.New(log, yahooTimeout).
		WithRateLimit(5, 5).
		WithHeader("User-Agent", "Mozilla/5.0")

	return &YahooClient{
		baseURL:    cfg.BaseURL,
		httpClient: httpClient,
		logger:     log,
	}
}

// Name identifies the source in logs and fallback diagnostics.
func (c *YahooClient) Name() string { return "yahoo" }

// chartResponse is the chart endpoint payload. Close/high/low entries are
// pointers because the API reports holidays and halts as nulls.
type chartResponse struct {
	Chart struct {
		Result []struct {
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// rangePreset maps a lookback in days to the nearest enclosing range the
// chart API accepts.
func rangePreset(lookbackDays int) string {
	switch {
	case lookbackDays <= 365:
		return "1y"
	case lookbackDays <= 730:
		return "2y"
	case lookbackDays <= 1825:
		return "5y"
	default:
		return "10y"
	}
}

// Daily fetches daily bars and realigns the three arrays by dropping every
// index where any of close/high/low is null, preserving relative order.
func (c *YahooClient) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?interval=1d&range=%s",
		c.baseURL, url.PathEscape(symbol), rangePreset(lookbackDays))

	resp, err := c.httpClient.Get(ctx, endpoint)
	if err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("yahoo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("yahoo read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return contracts.PriceSeries{}, contracts.NewUpstreamError(c.Name(), resp.StatusCode, string(body))
	}

	var payload chartResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return contracts.PriceSeries{}, fmt.Errorf("yahoo decode: %w", err)
	}

	if payload.Chart.Error != nil {
		return contracts.PriceSeries{}, fmt.Errorf("yahoo chart error: %s", payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		return contracts.PriceSeries{}, fmt.Errorf("yahoo: no result for %s", symbol)
	}

	quote := payload.Chart.Result[0].Indicators.Quote[0]
	series := alignBars(symbol, quote.Close, quote.High, quote.Low)

	if series.Len() < contracts.MinBars {
		return contracts.PriceSeries{}, fmt.Errorf("%w: yahoo returned %d aligned bars for %s",
			contracts.ErrDataUnavailable, series.Len(), symbol)
	}

	return series, nil
}

// alignBars drops indexes where any of the three values is null.
func alignBars(symbol string, closes, highs, lows []*float64) contracts.PriceSeries {
	n := len(closes)
	if len(highs) < n {
		n = len(highs)
	}
	if len(lows) < n {
		n = len(lows)
	}

	series := contracts.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		if closes[i] == nil || highs[i] == nil || lows[i] == nil {
			continue
		}
		series.Closes = append(series.Closes, *closes[i])
		series.Highs = append(series.Highs, *highs[i])
		series.Lows = append(series.Lows, *lows[i])
	}
	return series
}
