package contracts

// Decision is the final recommendation for an instrument.
type Decision string

const (
	DecisionBuy   Decision = "BUY"
	DecisionHold  Decision = "HOLD"
	DecisionSell  Decision = "SELL"
	DecisionAvoid Decision = "AVOID"
)

// Actionable reports whether the decision clears the buy/hold bar used by
// universe ranking.
func (d Decision) Actionable() bool {
	return d == DecisionBuy || d == DecisionHold
}

// Risk is the volatility bucket derived from ATR14/price.
type Risk string

const (
	RiskLow    Risk = "Low"
	RiskMedium Risk = "Medium"
	RiskHigh   Risk = "High"
)

// Confidence qualifies how well corroborated the decision is.
type Confidence string

const (
	ConfidenceLow    Confidence = "Low"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceHigh   Confidence = "High"
)

// Horizon is the qualitative holding-period label.
type Horizon string

const (
	HorizonShort       Horizon = "Short"
	HorizonMedium      Horizon = "Medium"
	HorizonLong        Horizon = "Long"
	HorizonObservation Horizon = "Observation"
)

// EvalResult is the immutable output of a single evaluation.
// It is created fresh per call and never persisted by the core.
type EvalResult struct {
	Symbol     string     `json:"symbol"`
	Name       string     `json:"name"`
	Price      float64    `json:"price"`
	Score      int        `json:"score"` // 0-100
	Confidence Confidence `json:"confidence"`
	Risk       Risk       `json:"risk"`
	Horizon    Horizon    `json:"horizon"`
	Decision   Decision   `json:"decision"`
	Rationale  string     `json:"rationale"`
}
