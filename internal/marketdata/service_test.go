package marketdata

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/logger"
)

// fakeSource is a scripted candle source.
type fakeSource struct {
	name   string
	series contracts.PriceSeries
	err    error
	calls  int
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	f.calls++
	if f.err != nil {
		return contracts.PriceSeries{}, f.err
	}
	return f.series, nil
}

type fakeQuoteSearcher struct {
	price   float64
	matches []contracts.SymbolMatch
}

func (f *fakeQuoteSearcher) Quote(ctx context.Context, symbol string) (float64, error) {
	return f.price, nil
}

func (f *fakeQuoteSearcher) Search(ctx context.Context, query string) ([]contracts.SymbolMatch, error) {
	return f.matches, nil
}

func validSeries(symbol string, n int) contracts.PriceSeries {
	s := contracts.PriceSeries{Symbol: symbol}
	for i := 0; i < n; i++ {
		s.Closes = append(s.Closes, 100)
		s.Highs = append(s.Highs, 101)
		s.Lows = append(s.Lows, 99)
	}
	return s
}

func TestService_Daily_PrimaryWins(t *testing.T) {
	primary := &fakeSource{name: "primary", series: validSeries("AAPL", 40)}
	secondary := &fakeSource{name: "secondary", series: validSeries("AAPL", 40)}

	svc := NewService(primary, secondary, &fakeQuoteSearcher{}, logger.Nop())

	series, err := svc.Daily(context.Background(), "AAPL", 420)
	require.NoError(t, err)
	assert.Equal(t, 40, series.Len())
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 0, secondary.calls, "secondary must not be touched on primary success")
}

func TestService_Daily_FallsBackOnPrimaryFailure(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("candles: status \"no_data\"")}
	secondary := &fakeSource{name: "secondary", series: validSeries("AAPL", 40)}

	svc := NewService(primary, secondary, &fakeQuoteSearcher{}, logger.Nop())

	series, err := svc.Daily(context.Background(), "AAPL", 420)
	require.NoError(t, err)
	assert.Equal(t, 40, series.Len())
	assert.Equal(t, 1, secondary.calls)
}

func TestService_Daily_FallsBackOnShortPrimarySeries(t *testing.T) {
	primary := &fakeSource{name: "primary", series: validSeries("AAPL", 10)}
	secondary := &fakeSource{name: "secondary", series: validSeries("AAPL", 40)}

	svc := NewService(primary, secondary, &fakeQuoteSearcher{}, logger.Nop())

	series, err := svc.Daily(context.Background(), "AAPL", 420)
	require.NoError(t, err)
	assert.Equal(t, 40, series.Len())
}

func TestService_Daily_AllSourcesExhausted(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("status 403")}
	secondary := &fakeSource{name: "secondary", series: validSeries("AAPL", 12)}

	svc := NewService(primary, secondary, &fakeQuoteSearcher{}, logger.Nop())

	_, err := svc.Daily(context.Background(), "AAPL", 420)
	require.Error(t, err)
	assert.True(t, errors.Is(err, contracts.ErrDataUnavailable))
}

func TestService_Daily_BreakerOpensAfterConsecutiveFailures(t *testing.T) {
	primary := &fakeSource{name: "primary", err: errors.New("timeout")}
	secondary := &fakeSource{name: "secondary", series: validSeries("AAPL", 40)}

	svc := NewService(primary, secondary, &fakeQuoteSearcher{}, logger.Nop())

	ctx := context.Background()
	for i := 0; i < 5; i++ {
		_, err := svc.Daily(ctx, "AAPL", 420)
		require.NoError(t, err, "fallback must keep every call succeeding")
	}

	// Three consecutive failures trip the breaker; later calls skip the
	// primary entirely and go straight to fallback.
	assert.Equal(t, 3, primary.calls)
	assert.Equal(t, 5, secondary.calls)
}

func TestService_QuoteAndSearchDelegateToPrimary(t *testing.T) {
	qs := &fakeQuoteSearcher{
		price:   42.5,
		matches: []contracts.SymbolMatch{{Symbol: "AAPL", Description: "APPLE INC"}},
	}
	svc := NewService(&fakeSource{name: "p"}, &fakeSource{name: "s"}, qs, logger.Nop())

	price, err := svc.Quote(context.Background(), "AAPL")
	require.NoError(t, err)
	assert.Equal(t, 42.5, price)

	matches, err := svc.Search(context.Background(), "apple")
	require.NoError(t, err)
	require.Len(t, matches, 1)
}
