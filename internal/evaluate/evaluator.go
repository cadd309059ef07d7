// Package evaluate orchestrates one instrument evaluation end to end and
// ranks the configured universe by the resulting scores.
package evaluate

import (
	"context"
	"fmt"
	"strings"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/internal/indicator"
	"github.com/stockpick/advisor/internal/marketdata"
	"github.com/stockpick/advisor/internal/score"
	"github.com/stockpick/advisor/internal/signal"
	"github.com/stockpick/advisor/internal/strategyconfig"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

// Evaluator produces one EvalResult per query. Each call is stateless:
// resolve, fetch, compute, score. Nothing is cached between calls.
type Evaluator struct {
	md       contracts.MarketData
	resolver *marketdata.Resolver
	detector *signal.Detector
	scorer   *score.Scorer

	benchmark       string
	lookbackDays    int
	relStrengthDays int

	logger *logger.Logger
}

// New creates an evaluator over the given market data service.
func New(md contracts.MarketData, cfg *config.Config, strat *strategyconfig.Config, log *logger.Logger) *Evaluator {
	return &Evaluator{
		md:              md,
		resolver:        marketdata.NewResolver(md),
		detector:        signal.NewDetector(strat.Signals),
		scorer:          score.NewScorer(strat.Score, strat.Risk),
		benchmark:       cfg.Benchmark,
		lookbackDays:    cfg.LookbackDays,
		relStrengthDays: strat.Signals.RelStrengthDays,
		logger:          log,
	}
}

// Evaluate runs the full pipeline for a free-text query. Resolution and the
// symbol series fetch are fatal; the benchmark fetch and the current quote
// are best-effort and degrade without aborting.
func (e *Evaluator) Evaluate(ctx context.Context, query string) (contracts.EvalResult, error) {
	symbol, name, err := e.resolver.Resolve(ctx, query)
	if err != nil {
		return contracts.EvalResult{}, err
	}

	series, err := e.md.Daily(ctx, symbol, e.lookbackDays)
	if err != nil {
		return contracts.EvalResult{}, err
	}
	if series.Len() < contracts.MinBars {
		return contracts.EvalResult{}, fmt.Errorf("%w: %s: %d bars", contracts.ErrDataUnavailable, symbol, series.Len())
	}

	benchRet, benchOK := e.benchmarkReturn(ctx)

	sig := e.detector.Detect(series.Closes, benchRet, benchOK)
	assessment := e.scorer.Assess(series, sig)
	decision := score.Decide(sig)

	price := e.currentPrice(ctx, symbol, series)

	result := contracts.EvalResult{
		Symbol:     symbol,
		Name:       name,
		Price:      price,
		Score:      assessment.Score,
		Confidence: assessment.Confidence,
		Risk:       assessment.Risk,
		Horizon:    assessment.Horizon,
		Decision:   decision,
		Rationale:  rationale(sig),
	}

	e.logger.WithFields(map[string]interface{}{
		"symbol":   symbol,
		"score":    result.Score,
		"decision": result.Decision,
		"risk":     result.Risk,
	}).Debug("Evaluation completed")

	return result, nil
}

// benchmarkReturn fetches the benchmark series and computes its return over
// the relative-strength window. Any failure leaves the return undefined;
// the detector then treats relative strength as not corroborating.
func (e *Evaluator) benchmarkReturn(ctx context.Context) (float64, bool) {
	series, err := e.md.Daily(ctx, e.benchmark, e.lookbackDays)
	if err != nil {
		e.logger.WithFields(map[string]interface{}{
			"benchmark": e.benchmark,
			"error":     err.Error(),
		}).Warn("Benchmark fetch failed, continuing without relative strength")
		return 0, false
	}

	return indicator.NRet(series.Closes, e.relStrengthDays)
}

// currentPrice asks the primary source for a live quote and falls back to
// the last close on failure or a non-positive quote.
func (e *Evaluator) currentPrice(ctx context.Context, symbol string, series contracts.PriceSeries) float64 {
	quote, err := e.md.Quote(ctx, symbol)
	if err != nil || quote <= 0 {
		if err != nil {
			e.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("Quote fetch failed, using last close")
		}
		return series.LastClose()
	}
	return quote
}

// rationale renders the active signals as a short human-readable string.
func rationale(sig contracts.SignalState) string {
	var reasons []string
	if sig.S1 {
		reasons = append(reasons, "S1 active (1D/5D momentum above the 20-day average)")
	}
	if sig.S2 {
		reasons = append(reasons, "S2 active (trend and relative strength)")
	}
	if sig.S3 {
		reasons = append(reasons, "S3 active (drop and cross under the 20-day average)")
	}
	if len(reasons) == 0 {
		return "No strong signals (observation)"
	}
	return strings.Join(reasons, "; ")
}
