package strategyconfig

// Config holds the tunable strategy thresholds. The defaults reproduce the
// shipped heuristic exactly; a YAML file can override them per deployment.
type Config struct {
	Signals SignalConfig `yaml:"signals" json:"signals"`
	Score   ScoreConfig  `yaml:"score" json:"score"`
	Risk    RiskConfig   `yaml:"risk" json:"risk"`
}

// SignalConfig holds the S1/S2/S3 detection thresholds.
type SignalConfig struct {
	// S1: one-day or five-day return bar, plus margin over the 20-day SMA.
	Ret1DBreakout float64 `yaml:"ret_1d_breakout" json:"ret_1d_breakout"`
	Ret5DBreakout float64 `yaml:"ret_5d_breakout" json:"ret_5d_breakout"`
	SMA20Margin   float64 `yaml:"sma20_margin" json:"sma20_margin"`

	// S2: lookback for the relative-strength return comparison.
	RelStrengthDays int `yaml:"rel_strength_days" json:"rel_strength_days"`

	// S3: one-day loss confirming the down-cross under the 20-day SMA.
	Ret1DBreakdown float64 `yaml:"ret_1d_breakdown" json:"ret_1d_breakdown"`
}

// ScoreConfig holds the score weights.
type ScoreConfig struct {
	S1Weight    int `yaml:"s1_weight" json:"s1_weight"`
	S2Weight    int `yaml:"s2_weight" json:"s2_weight"`
	RiskPenalty int `yaml:"risk_penalty" json:"risk_penalty"`
}

// RiskConfig holds the volatility-ratio cutoffs (ATR14/price).
type RiskConfig struct {
	LowMax  float64 `yaml:"low_max" json:"low_max"`
	HighMin float64 `yaml:"high_min" json:"high_min"`
}

// Default returns the built-in strategy configuration.
func Default() *Config {
	return &Config{
		Signals: SignalConfig{
			Ret1DBreakout:   0.01,
			Ret5DBreakout:   0.03,
			SMA20Margin:     1.005,
			RelStrengthDays: 63,
			Ret1DBreakdown:  -0.01,
		},
		Score: ScoreConfig{
			S1Weight:    40,
			S2Weight:    50,
			RiskPenalty: 30,
		},
		Risk: RiskConfig{
			LowMax:  0.015,
			HighMin: 0.03,
		},
	}
}
