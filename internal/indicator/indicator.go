// Package indicator provides the pure numeric building blocks for signal
// detection. Every function returns (value, ok); ok=false means the indicator
// is undefined for the given history and must never be read as zero.
package indicator

import "math"

// SMA returns the arithmetic mean of the last n closes.
// Undefined when fewer than n bars exist.
func SMA(closes []float64, n int) (float64, bool) {
	if n < 1 || len(closes) < n {
		return 0, false
	}

	var sum float64
	for _, c := range closes[len(closes)-n:] {
		sum += c
	}
	return sum / float64(n), true
}

// NRet returns the k-period return (last/close[-k-1] - 1).
// Undefined when fewer than k+1 bars exist or the base close is exactly zero.
func NRet(closes []float64, k int) (float64, bool) {
	if k < 1 || len(closes) <= k {
		return 0, false
	}

	base := closes[len(closes)-k-1]
	if base == 0 {
		return 0, false
	}
	return closes[len(closes)-1]/base - 1.0, true
}

// ATR14 returns the mean of the most recent 14 true-range values, where
// true_range_i = max(high_i-low_i, |high_i-close_{i-1}|, |low_i-close_{i-1}|).
// Undefined when fewer than 15 bars exist.
func ATR14(highs, lows, closes []float64) (float64, bool) {
	const period = 14

	n := len(closes)
	if n < period+1 || len(highs) != n || len(lows) != n {
		return 0, false
	}

	var sum float64
	for i := n - period; i < n; i++ {
		tr := math.Max(highs[i]-lows[i],
			math.Max(math.Abs(highs[i]-closes[i-1]), math.Abs(lows[i]-closes[i-1])))
		sum += tr
	}
	return sum / period, true
}
