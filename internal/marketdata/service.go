// Package marketdata implements the data-source boundary: a token
// authenticated primary source, an unauthenticated secondary source, and the
// explicit two-stage fallback between them.
package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/sony/gobreaker"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/logger"
)

// CandleSource supplies a daily price series for a trailing window.
type CandleSource interface {
	Name() string
	Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error)
}

// QuoteSearcher supplies current quotes and symbol search. Both live on the
// primary source only; their failures are handled by the caller.
type QuoteSearcher interface {
	Quote(ctx context.Context, symbol string) (float64, error)
	Search(ctx context.Context, query string) ([]contracts.SymbolMatch, error)
}

// Service implements contracts.MarketData. Candle fetches try each source in
// order and stop at the first one that yields enough aligned bars; there is
// no retry beyond that single fallback and no caching across calls.
type Service struct {
	sources []CandleSource
	primary QuoteSearcher
	logger  *logger.Logger
}

// NewService wires the ordered source list. The primary candle source sits
// behind a circuit breaker; an open breaker counts as a failed primary call
// and falls through to the secondary exactly like any other failure.
func NewService(primary CandleSource, secondary CandleSource, qs QuoteSearcher, log *logger.Logger) *Service {
	guarded := &breakerSource{
		inner: primary,
		cb: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    primary.Name(),
			Timeout: 60 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= 3
			},
		}),
	}

	return &Service{
		sources: []CandleSource{guarded, secondary},
		primary: qs,
		logger:  log,
	}
}

// Daily returns the first usable series from the ordered sources, or
// ErrDataUnavailable once all of them are exhausted.
func (s *Service) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	var lastErr error

	for _, src := range s.sources {
		series, err := src.Daily(ctx, symbol, lookbackDays)
		if err != nil {
			lastErr = err
			s.logger.WithFields(map[string]interface{}{
				"source": src.Name(),
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Candle source failed, trying next")
			continue
		}

		if !series.Aligned() || series.Len() < contracts.MinBars {
			lastErr = fmt.Errorf("%s returned %d bars for %s", src.Name(), series.Len(), symbol)
			s.logger.WithFields(map[string]interface{}{
				"source": src.Name(),
				"symbol": symbol,
				"bars":   series.Len(),
			}).Warn("Series too short, trying next source")
			continue
		}

		return series, nil
	}

	return contracts.PriceSeries{}, fmt.Errorf("%w: %s: %v", contracts.ErrDataUnavailable, symbol, lastErr)
}

// Quote returns the current price from the primary source.
func (s *Service) Quote(ctx context.Context, symbol string) (float64, error) {
	return s.primary.Quote(ctx, symbol)
}

// Search returns symbol candidates from the primary source.
func (s *Service) Search(ctx context.Context, query string) ([]contracts.SymbolMatch, error) {
	return s.primary.Search(ctx, query)
}

// breakerSource guards a candle source with a circuit breaker.
type breakerSource struct {
	inner CandleSource
	cb    *gobreaker.CircuitBreaker
}

func (b *breakerSource) Name() string { return b.inner.Name() }

func (b *breakerSource) Daily(ctx context.Context, symbol string, lookbackDays int) (contracts.PriceSeries, error) {
	result, err := b.cb.Execute(func() (interface{}, error) {
		return b.inner.Daily(ctx, symbol, lookbackDays)
	})
	if err != nil {
		return contracts.PriceSeries{}, err
	}
	return result.(contracts.PriceSeries), nil
}
