// Package score translates a signal state into the bounded recommendation
// tuple: numeric score, risk bucket, confidence and horizon labels.
package score

import (
	"math"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/internal/indicator"
	"github.com/stockpick/advisor/internal/strategyconfig"
)

// Assessment is the scored view of one evaluation.
type Assessment struct {
	Score      int
	Risk       contracts.Risk
	Confidence contracts.Confidence
	Horizon    contracts.Horizon
}

// Scorer maps signal states to assessments using configured weights.
type Scorer struct {
	score strategyconfig.ScoreConfig
	risk  strategyconfig.RiskConfig
}

// NewScorer creates a scorer with the given weights and risk cutoffs.
func NewScorer(scoreCfg strategyconfig.ScoreConfig, riskCfg strategyconfig.RiskConfig) *Scorer {
	return &Scorer{score: scoreCfg, risk: riskCfg}
}

// Assess scores a signal state against the series it was derived from.
// The series supplies the ATR14/price volatility ratio for the risk bucket.
func (s *Scorer) Assess(series contracts.PriceSeries, sig contracts.SignalState) Assessment {
	risk, penalty := s.riskBucket(series)

	raw := 0
	if sig.S1 {
		raw += s.score.S1Weight
	}
	if sig.S2 {
		raw += s.score.S2Weight
	}
	raw -= int(math.Round(float64(s.score.RiskPenalty) * penalty))

	return Assessment{
		Score:      clamp(raw, 0, 100),
		Risk:       risk,
		Confidence: s.confidence(sig, risk),
		Horizon:    s.horizon(sig),
	}
}

// riskBucket derives the volatility bucket and its score penalty from
// ATR14/price. An undefined ATR or a zero price defaults to Medium.
func (s *Scorer) riskBucket(series contracts.PriceSeries) (contracts.Risk, float64) {
	atr, ok := indicator.ATR14(series.Highs, series.Lows, series.Closes)
	price := series.LastClose()

	if !ok || price == 0 {
		return contracts.RiskMedium, 0.5
	}

	vol := atr / price
	switch {
	case vol < s.risk.LowMax:
		return contracts.RiskLow, 0.0
	case vol > s.risk.HighMin:
		return contracts.RiskHigh, 1.0
	default:
		return contracts.RiskMedium, 0.5
	}
}

func (s *Scorer) horizon(sig contracts.SignalState) contracts.Horizon {
	switch {
	case sig.S2 && sig.S2Strength >= 3:
		return contracts.HorizonLong
	case sig.S2:
		return contracts.HorizonMedium
	case sig.S1:
		return contracts.HorizonShort
	default:
		return contracts.HorizonObservation
	}
}

func (s *Scorer) confidence(sig contracts.SignalState, risk contracts.Risk) contracts.Confidence {
	switch {
	case sig.S2 && risk != contracts.RiskHigh:
		return contracts.ConfidenceHigh
	case sig.S1 || sig.S2:
		return contracts.ConfidenceMedium
	default:
		return contracts.ConfidenceLow
	}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
