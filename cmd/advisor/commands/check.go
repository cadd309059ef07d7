package commands

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check <symbol or name>",
	Short: "Evaluate one instrument",
	Long: `Evaluates a single instrument and prints the decision.

The query can be a ticker symbol or a free-text name; the upstream
symbol search resolves it.

Example:
  go run ./cmd/advisor check AAPL
  go run ./cmd/advisor check "apple inc"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	ev, _, err := buildCore(cfg, log)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	query := strings.Join(args, " ")
	result, err := ev.Evaluate(ctx, query)
	if err != nil {
		return fmt.Errorf("evaluate %q: %w", query, err)
	}

	fmt.Printf("%s (%s)\n", result.Name, result.Symbol)
	fmt.Printf("  Price:      %.2f\n", result.Price)
	fmt.Printf("  Decision:   %s\n", result.Decision)
	fmt.Printf("  Score:      %d/100\n", result.Score)
	fmt.Printf("  Risk:       %s\n", result.Risk)
	fmt.Printf("  Confidence: %s\n", result.Confidence)
	fmt.Printf("  Horizon:    %s\n", result.Horizon)
	fmt.Printf("  Rationale:  %s\n", result.Rationale)

	return nil
}
