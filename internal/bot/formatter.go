package bot

import (
	"fmt"
	"strings"

	"github.com/stockpick/advisor/internal/contracts"
)

// FormatResult renders one evaluation as a chat message.
func FormatResult(res contracts.EvalResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s (%s)\n", res.Name, res.Symbol)
	fmt.Fprintf(&b, "Price: %.2f\n", res.Price)
	fmt.Fprintf(&b, "Decision: %s | Score: %d/100\n", res.Decision, res.Score)
	fmt.Fprintf(&b, "Risk: %s | Confidence: %s | Horizon: %s\n", res.Risk, res.Confidence, res.Horizon)
	fmt.Fprintf(&b, "Why: %s", res.Rationale)
	return b.String()
}

// FormatIdeas renders a ranked idea list as a chat message.
func FormatIdeas(ideas []contracts.EvalResult) string {
	if len(ideas) == 0 {
		return "No actionable ideas right now."
	}

	var b strings.Builder
	b.WriteString("Top ideas:\n")
	for i, idea := range ideas {
		fmt.Fprintf(&b, "%d. %s (%s): %s, score %d, risk %s\n",
			i+1, idea.Name, idea.Symbol, idea.Decision, idea.Score, idea.Risk)
	}
	return strings.TrimRight(b.String(), "\n")
}
