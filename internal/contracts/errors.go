package contracts

import (
	"errors"
	"fmt"
)

var (
	// ErrSymbolNotFound means the symbol search returned no candidates.
	ErrSymbolNotFound = errors.New("symbol not found")

	// ErrDataUnavailable means every price source failed or returned fewer
	// bars than the evaluation minimum.
	ErrDataUnavailable = errors.New("price data unavailable")
)

// upstreamBodyLimit caps the response body carried inside an UpstreamError.
const upstreamBodyLimit = 200

// UpstreamError wraps a transport or HTTP failure from a data source with
// enough context to diagnose it. Credentials are never included: clients
// authenticate via headers, so neither the URL nor the body leaks the token.
type UpstreamError struct {
	Source     string
	StatusCode int
	Body       string
}

// NewUpstreamError builds an UpstreamError, truncating the body.
func NewUpstreamError(source string, statusCode int, body string) *UpstreamError {
	if len(body) > upstreamBodyLimit {
		body = body[:upstreamBodyLimit]
	}
	return &UpstreamError{
		Source:     source,
		StatusCode: statusCode,
		Body:       body,
	}
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s: status %d: %s", e.Source, e.StatusCode, e.Body)
}
