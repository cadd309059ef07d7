// Package signal derives the three boolean trading signals from a daily
// close series. Detection is pure: the same inputs always produce the same
// SignalState.
package signal

import (
	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/internal/indicator"
	"github.com/stockpick/advisor/internal/strategyconfig"
)

// Slope-proxy windows for the S2 trend check. The recent 50-close mean is
// compared against the mean of the 50 closes ending 10 bars back, and the
// check only engages with at least 260 bars of history.
const (
	slopeMinBars     = 260
	slopeWindow      = 50
	slopeOldStart    = 60
	slopeOldEnd      = 10
	breakdownMinBars = 21
)

// Detector evaluates S1/S2/S3 against configured thresholds.
type Detector struct {
	cfg strategyconfig.SignalConfig
}

// NewDetector creates a detector with the given thresholds.
func NewDetector(cfg strategyconfig.SignalConfig) *Detector {
	return &Detector{cfg: cfg}
}

// Detect computes the signal state for a close series. benchRet is the
// benchmark return over the relative-strength window; benchOK=false (a failed
// or too-short benchmark fetch) leaves the relative-strength sub-condition
// not corroborating rather than excluding it from the 2-of-3 vote.
func (d *Detector) Detect(closes []float64, benchRet float64, benchOK bool) contracts.SignalState {
	state := contracts.SignalState{}
	if len(closes) == 0 {
		return state
	}

	if ret, ok := indicator.NRet(closes, 1); ok {
		state.Ret1D = ret
	}
	if ret, ok := indicator.NRet(closes, 5); ok {
		state.Ret5D = ret
	}

	last := closes[len(closes)-1]
	sma20, sma20OK := indicator.SMA(closes, 20)

	// S1: short-term momentum with the close clearing the 20-day average.
	momentum := state.Ret1D >= d.cfg.Ret1DBreakout || state.Ret5D >= d.cfg.Ret5DBreakout
	state.S1 = momentum && sma20OK && last > d.cfg.SMA20Margin*sma20

	// S2: two of three trend sub-conditions must corroborate.
	state.S2Strength = d.trendStrength(closes, last, benchRet, benchOK)
	state.S2 = state.S2Strength >= 2

	// S3: yesterday at or above the 20-day average, today below it with a
	// confirming one-day loss.
	if sma20OK && len(closes) >= breakdownMinBars {
		yesterdayAbove := closes[len(closes)-2] >= sma20
		todayBelow := last < sma20 && state.Ret1D <= d.cfg.Ret1DBreakdown
		state.S3 = yesterdayAbove && todayBelow
	}

	return state
}

// trendStrength counts the S2 sub-conditions that hold.
func (d *Detector) trendStrength(closes []float64, last, benchRet float64, benchOK bool) int {
	strength := 0

	// Stacked moving averages: close above MA50 above MA200.
	sma50, ok50 := indicator.SMA(closes, 50)
	sma200, ok200 := indicator.SMA(closes, 200)
	if ok50 && ok200 && last > sma50 && sma50 > sma200 {
		strength++
	}

	// Rising 50-day mean (slope proxy).
	if len(closes) >= slopeMinBars {
		recent := mean(closes[len(closes)-slopeWindow:])
		old := mean(closes[len(closes)-slopeOldStart : len(closes)-slopeOldEnd])
		if recent > old {
			strength++
		}
	}

	// Relative strength against the benchmark.
	if symRet, ok := indicator.NRet(closes, d.cfg.RelStrengthDays); ok && benchOK {
		if symRet-benchRet > 0 {
			strength++
		}
	}

	return strength
}

func mean(vals []float64) float64 {
	var sum float64
	for _, v := range vals {
		sum += v
	}
	return sum / float64(len(vals))
}
