package evaluate

import (
	"context"
	"sort"
	"sync"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/logger"
)

// symbolEvaluator is what the ranker needs from the evaluator.
type symbolEvaluator interface {
	Evaluate(ctx context.Context, query string) (contracts.EvalResult, error)
}

// Exclusion records why a universe symbol produced no ranked result.
// Kept separate from the results so failures stay visible for diagnostics.
type Exclusion struct {
	Symbol string
	Reason string
}

// Ranker evaluates every symbol of the fixed universe independently and
// ranks the actionable results. One bad ticker can never abort the batch.
type Ranker struct {
	eval     symbolEvaluator
	universe []string
	workers  int
	logger   *logger.Logger
}

// NewRanker creates a ranker over the configured universe. workers bounds
// the concurrent evaluations to respect upstream rate limits.
func NewRanker(eval symbolEvaluator, universe []string, workers int, log *logger.Logger) *Ranker {
	if workers < 1 {
		workers = 1
	}
	return &Ranker{
		eval:     eval,
		universe: universe,
		workers:  workers,
		logger:   log,
	}
}

// Scan evaluates the whole universe and partitions the outcome into
// successful evaluations (in universe encounter order) and exclusions.
func (r *Ranker) Scan(ctx context.Context) ([]contracts.EvalResult, []Exclusion) {
	results := make([]*contracts.EvalResult, len(r.universe))
	failures := make([]*Exclusion, len(r.universe))

	sem := make(chan struct{}, r.workers)
	var wg sync.WaitGroup

	for i, symbol := range r.universe {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			result, err := r.eval.Evaluate(ctx, symbol)
			if err != nil {
				failures[i] = &Exclusion{Symbol: symbol, Reason: err.Error()}
				return
			}
			results[i] = &result
		}(i, symbol)
	}
	wg.Wait()

	// Collapse the sparse slices back into universe encounter order so ties
	// later sort stably by that order.
	kept := make([]contracts.EvalResult, 0, len(r.universe))
	excluded := make([]Exclusion, 0)
	for i := range r.universe {
		if results[i] != nil {
			kept = append(kept, *results[i])
		}
		if failures[i] != nil {
			excluded = append(excluded, *failures[i])
		}
	}

	r.logger.WithFields(map[string]interface{}{
		"universe": len(r.universe),
		"kept":     len(kept),
		"excluded": len(excluded),
	}).Info("Universe scan completed")

	return kept, excluded
}

// Rank returns the top-K actionable candidates: only BUY/HOLD results are
// retained, sorted descending by score with ties keeping universe order,
// truncated to max(1, topK).
func (r *Ranker) Rank(ctx context.Context, topK int) []contracts.EvalResult {
	kept, excluded := r.Scan(ctx)

	for _, ex := range excluded {
		r.logger.WithFields(map[string]interface{}{
			"symbol": ex.Symbol,
			"reason": ex.Reason,
		}).Debug("Symbol excluded from ranking")
	}

	ideas := make([]contracts.EvalResult, 0, len(kept))
	for _, res := range kept {
		if res.Decision.Actionable() {
			ideas = append(ideas, res)
		}
	}

	sort.SliceStable(ideas, func(i, j int) bool {
		return ideas[i].Score > ideas[j].Score
	})

	if topK < 1 {
		topK = 1
	}
	if len(ideas) > topK {
		ideas = ideas[:topK]
	}

	return ideas
}
