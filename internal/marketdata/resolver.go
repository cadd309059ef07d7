package marketdata

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockpick/advisor/internal/contracts"
)

// Resolver maps a free-text ticker/ISIN/name query to a canonical symbol and
// display name via the upstream symbol search.
type Resolver struct {
	md contracts.MarketData
}

// NewResolver creates a resolver backed by the given market data service.
func NewResolver(md contracts.MarketData) *Resolver {
	return &Resolver{md: md}
}

// Resolve returns (symbol, displayName). A candidate whose symbol equals the
// query case-insensitively wins; otherwise the first candidate is taken.
// Fails with ErrSymbolNotFound when the search yields no candidates.
func (r *Resolver) Resolve(ctx context.Context, query string) (string, string, error) {
	matches, err := r.md.Search(ctx, query)
	if err != nil {
		return "", "", fmt.Errorf("search %q: %w", query, err)
	}

	if len(matches) == 0 {
		return "", "", fmt.Errorf("%w: %q", contracts.ErrSymbolNotFound, query)
	}

	for _, m := range matches {
		if strings.EqualFold(m.Symbol, query) {
			return m.Symbol, displayName(m), nil
		}
	}

	first := matches[0]
	return first.Symbol, displayName(first), nil
}

func displayName(m contracts.SymbolMatch) string {
	if m.Description != "" {
		return m.Description
	}
	return m.Symbol
}
