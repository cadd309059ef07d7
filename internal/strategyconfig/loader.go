package strategyconfig

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads a YAML strategy file. Unknown fields fail immediately so typos
// cannot silently fall back to defaults. An empty path returns Default().
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read strategy file: %w", err)
	}

	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("decode strategy file: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid strategy file: %w", err)
	}

	return cfg, nil
}

// Validate checks invariants the scorer relies on.
func Validate(cfg *Config) error {
	if cfg.Signals.Ret1DBreakout <= 0 || cfg.Signals.Ret5DBreakout <= 0 {
		return fmt.Errorf("breakout return thresholds must be positive")
	}
	if cfg.Signals.SMA20Margin < 1.0 {
		return fmt.Errorf("sma20_margin must be at least 1.0")
	}
	if cfg.Signals.RelStrengthDays < 1 {
		return fmt.Errorf("rel_strength_days must be at least 1")
	}
	if cfg.Signals.Ret1DBreakdown >= 0 {
		return fmt.Errorf("ret_1d_breakdown must be negative")
	}
	if cfg.Score.S1Weight < 0 || cfg.Score.S2Weight < 0 || cfg.Score.RiskPenalty < 0 {
		return fmt.Errorf("score weights must not be negative")
	}
	if cfg.Risk.LowMax <= 0 || cfg.Risk.HighMin <= cfg.Risk.LowMax {
		return fmt.Errorf("risk cutoffs must satisfy 0 < low_max < high_min")
	}
	return nil
}
