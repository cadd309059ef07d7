// Package commands holds the advisor CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/stockpick/advisor/internal/evaluate"
	"github.com/stockpick/advisor/internal/marketdata"
	"github.com/stockpick/advisor/internal/strategyconfig"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "advisor",
	Short: "Stock signal advisor",
	Long: `Stock signal advisor

Evaluates instruments against momentum, trend and breakdown signals and
ranks a fixed watch universe into buy ideas.

Examples:
  go run ./cmd/advisor check AAPL
  go run ./cmd/advisor ideas --top 3
  go run ./cmd/advisor serve
  go run ./cmd/advisor bot`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// buildCore wires the evaluation pipeline from config: data sources with
// fallback, strategy thresholds, evaluator, ranker.
func buildCore(cfg *config.Config, log *logger.Logger) (*evaluate.Evaluator, *evaluate.Ranker, error) {
	strat, err := strategyconfig.Load(cfg.StrategyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load strategy config: %w", err)
	}

	finnhub := marketdata.NewFinnhubClient(cfg.Finnhub, log)
	yahoo := marketdata.NewYahooClient(cfg.Yahoo, log)
	md := marketdata.NewService(finnhub, yahoo, finnhub, log)

	ev := evaluate.New(md, cfg, strat, log)
	ranker := evaluate.NewRanker(ev, cfg.Universe, cfg.RankWorkers, log)

	return ev, ranker, nil
}
