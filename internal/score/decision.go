package score

import "github.com/stockpick/advisor/internal/contracts"

// Decide maps a signal state to a decision. Priority order, first match
// wins: breakdown sells regardless of momentum, so a simultaneous
// breakout-and-breakdown resolves to SELL.
func Decide(sig contracts.SignalState) contracts.Decision {
	switch {
	case sig.S3:
		return contracts.DecisionSell
	case sig.S1:
		return contracts.DecisionBuy
	case sig.S2:
		return contracts.DecisionHold
	default:
		return contracts.DecisionAvoid
	}
}
