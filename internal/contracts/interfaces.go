package contracts

import "context"

// SymbolMatch is one candidate returned by a symbol search.
type SymbolMatch struct {
	Symbol      string `json:"symbol"`
	Description string `json:"description"`
}

// MarketData is the data-source boundary the core depends on. The concrete
// implementation composes a primary and a secondary source with fallback.
type MarketData interface {
	// Daily returns the daily price series for the trailing lookback window.
	// It fails with ErrDataUnavailable when every source is exhausted or the
	// surviving series is shorter than MinBars.
	Daily(ctx context.Context, symbol string, lookbackDays int) (PriceSeries, error)

	// Quote returns the current price.
	Quote(ctx context.Context, symbol string) (float64, error)

	// Search returns symbol candidates for a free-text ticker/ISIN/name query.
	Search(ctx context.Context, query string) ([]SymbolMatch, error)
}
