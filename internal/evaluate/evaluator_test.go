package evaluate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/internal/strategyconfig"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

// fakeMarketData serves scripted series, quotes, and search results.
type fakeMarketData struct {
	series    map[string]contracts.PriceSeries
	seriesErr map[string]error
	quote     float64
	quoteErr  error
	matches   []contracts.SymbolMatch
}

func (f *fakeMarketData) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	if err, ok := f.seriesErr[symbol]; ok {
		return contracts.PriceSeries{}, err
	}
	if s, ok := f.series[symbol]; ok {
		return s, nil
	}
	return contracts.PriceSeries{}, contracts.ErrDataUnavailable
}

func (f *fakeMarketData) Quote(ctx context.Context, symbol string) (float64, error) {
	return f.quote, f.quoteErr
}

func (f *fakeMarketData) Search(ctx context.Context, query string) ([]contracts.SymbolMatch, error) {
	return f.matches, nil
}

func testConfig() *config.Config {
	return &config.Config{Benchmark: "SPY", LookbackDays: 420}
}

// risingSeries builds n bars rising by step per day with a narrow range.
func risingSeries(symbol string, n int, step float64) contracts.PriceSeries {
	s := contracts.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		c := 100.0 + float64(i)*step
		s.Closes = append(s.Closes, c)
		s.Highs = append(s.Highs, c+0.5)
		s.Lows = append(s.Lows, c-0.5)
	}
	return s
}

func flatSeries(symbol string, n int, price float64) contracts.PriceSeries {
	s := contracts.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		s.Closes = append(s.Closes, price)
		s.Highs = append(s.Highs, price+0.5)
		s.Lows = append(s.Lows, price-0.5)
	}
	return s
}

func newTestEvaluator(md contracts.MarketData) *Evaluator {
	return New(md, testConfig(), strategyconfig.Default(), logger.Nop())
}

func TestEvaluate_ShortSeriesFails(t *testing.T) {
	md := &fakeMarketData{
		series:  map[string]contracts.PriceSeries{"AAPL": flatSeries("AAPL", 29, 100)},
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
	}

	_, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrDataUnavailable))
}

func TestEvaluate_UnknownSymbolFails(t *testing.T) {
	md := &fakeMarketData{}

	_, err := newTestEvaluator(md).Evaluate(context.Background(), "NOPE")
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrSymbolNotFound))
}

func TestEvaluate_TrendWithBenchmark(t *testing.T) {
	md := &fakeMarketData{
		series: map[string]contracts.PriceSeries{
			"AAPL": risingSeries("AAPL", 300, 0.5),
			"SPY":  flatSeries("SPY", 300, 100), // benchmark return ~ 0
		},
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quote:   250.5,
	}

	result, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)

	// All three trend sub-conditions corroborate: long horizon.
	assert.Equal(t, contracts.HorizonLong, result.Horizon)
	assert.Equal(t, 250.5, result.Price, "live quote preferred")
	assert.Equal(t, "APPLE INC", result.Name)
	assert.Contains(t, result.Rationale, "S2 active")
}

func TestEvaluate_BenchmarkFailureDegrades(t *testing.T) {
	md := &fakeMarketData{
		series: map[string]contracts.PriceSeries{
			"AAPL": risingSeries("AAPL", 300, 0.5),
		},
		seriesErr: map[string]error{"SPY": errors.New("status 403")},
		matches:   []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quote:     250.5,
	}

	result, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.NoError(t, err, "benchmark failure must not abort the evaluation")

	// Relative strength no longer corroborates: two of three left, so the
	// trend holds but the horizon drops from Long to Medium.
	assert.Equal(t, contracts.HorizonMedium, result.Horizon)
}

func TestEvaluate_QuoteFailureFallsBackToLastClose(t *testing.T) {
	series := risingSeries("AAPL", 300, 0.5)
	md := &fakeMarketData{
		series:   map[string]contracts.PriceSeries{"AAPL": series, "SPY": flatSeries("SPY", 300, 100)},
		matches:  []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quoteErr: errors.New("status 500"),
	}

	result, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, series.LastClose(), result.Price)
}

func TestEvaluate_ZeroQuoteFallsBackToLastClose(t *testing.T) {
	series := risingSeries("AAPL", 300, 0.5)
	md := &fakeMarketData{
		series:  map[string]contracts.PriceSeries{"AAPL": series, "SPY": flatSeries("SPY", 300, 100)},
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quote:   0,
	}

	result, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, series.LastClose(), result.Price)
}

func TestEvaluate_Idempotent(t *testing.T) {
	md := &fakeMarketData{
		series: map[string]contracts.PriceSeries{
			"AAPL": risingSeries("AAPL", 300, 0.5),
			"SPY":  flatSeries("SPY", 300, 100),
		},
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quote:   250.5,
	}
	ev := newTestEvaluator(md)

	first, err := ev.Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)
	second, err := ev.Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical inputs must produce identical results")
}

func TestEvaluate_NoSignalsObservation(t *testing.T) {
	md := &fakeMarketData{
		series: map[string]contracts.PriceSeries{
			"AAPL": flatSeries("AAPL", 100, 100),
			"SPY":  flatSeries("SPY", 100, 100),
		},
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
		quote:   100,
	}

	result, err := newTestEvaluator(md).Evaluate(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, contracts.DecisionAvoid, result.Decision)
	assert.Equal(t, contracts.HorizonObservation, result.Horizon)
	assert.Equal(t, contracts.ConfidenceLow, result.Confidence)
	assert.Equal(t, "No strong signals (observation)", result.Rationale)
}
