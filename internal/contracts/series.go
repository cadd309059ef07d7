package contracts

// MinBars is the minimum daily bar count required for any evaluation.
// Indicators needing longer history degrade to undefined instead of failing.
const MinBars = 30

// PriceSeries holds a daily price history as three aligned arrays in
// chronologically ascending order. Missing days are simply absent.
type PriceSeries struct {
	Symbol string
	Closes []float64
	Highs  []float64
	Lows   []float64
}

// Len returns the number of bars.
func (s PriceSeries) Len() int {
	return len(s.Closes)
}

// LastClose returns the most recent close, or 0 for an empty series.
func (s PriceSeries) LastClose() float64 {
	if len(s.Closes) == 0 {
		return 0
	}
	return s.Closes[len(s.Closes)-1]
}

// Aligned reports whether the three arrays have equal length.
func (s PriceSeries) Aligned() bool {
	return len(s.Closes) == len(s.Highs) && len(s.Closes) == len(s.Lows)
}
