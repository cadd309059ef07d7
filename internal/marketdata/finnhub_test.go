package marketdata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

func newFinnhubTestClient(t *testing.T, handler http.HandlerFunc) *FinnhubClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewFinnhubClient(config.FinnhubConfig{
		Token:   "test-token",
		BaseURL: srv.URL,
	}, logger.Nop())
}

func TestFinnhubClient_Daily(t *testing.T) {
	var gotPath, gotToken string
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get("X-Finnhub-Token")
		assert.Equal(t, "AAPL", r.URL.Query().Get("symbol"))
		assert.Equal(t, "D", r.URL.Query().Get("resolution"))
		assert.NotEmpty(t, r.URL.Query().Get("from"))
		assert.NotEmpty(t, r.URL.Query().Get("to"))

		w.Write([]byte(`{"s":"ok","c":[100,101],"h":[102,103],"l":[99,100]}`))
	})

	series, err := client.Daily(context.Background(), "AAPL", 420)
	require.NoError(t, err)

	assert.Equal(t, "/stock/candle", gotPath)
	assert.Equal(t, "test-token", gotToken, "token travels in the header, not the URL")
	assert.Equal(t, []float64{100, 101}, series.Closes)
	assert.Equal(t, []float64{102, 103}, series.Highs)
	assert.Equal(t, []float64{99, 100}, series.Lows)
	assert.True(t, series.Aligned())
}

func TestFinnhubClient_Daily_NoDataStatus(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"s":"no_data"}`))
	})

	_, err := client.Daily(context.Background(), "AAPL", 420)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no_data")
}

func TestFinnhubClient_Daily_HTTPError(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(strings.Repeat("x", 500)))
	})

	_, err := client.Daily(context.Background(), "AAPL", 420)
	require.Error(t, err)

	var upstream *contracts.UpstreamError
	require.True(t, errors.As(err, &upstream))
	assert.Equal(t, http.StatusTooManyRequests, upstream.StatusCode)
	assert.LessOrEqual(t, len(upstream.Body), 200, "body is truncated")
	assert.NotContains(t, upstream.Error(), "test-token")
}

func TestFinnhubClient_Quote(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/quote", r.URL.Path)
		w.Write([]byte(`{"c":123.45}`))
	})

	price, err := client.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 123.45, price)
}

func TestFinnhubClient_Search(t *testing.T) {
	client := newFinnhubTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "apple", r.URL.Query().Get("q"))
		w.Write([]byte(`{"result":[{"symbol":"AAPL","description":"APPLE INC"}]}`))
	})

	matches, err := client.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "AAPL", matches[0].Symbol)
	assert.Equal(t, "APPLE INC", matches[0].Description)
}
