package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
)

// ideasCmd represents the ideas command
var ideasCmd = &cobra.Command{
	Use:   "ideas",
	Short: "Rank the watch universe into buy ideas",
	Long: `Scans the configured universe, keeps BUY/HOLD candidates and prints
the top ideas by score.

Example:
  go run ./cmd/advisor ideas
  go run ./cmd/advisor ideas --top 3`,
	RunE: runIdeas,
}

var ideasTop int

func init() {
	rootCmd.AddCommand(ideasCmd)

	ideasCmd.Flags().IntVar(&ideasTop, "top", 0, "number of ideas (default from config)")
}

func runIdeas(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg)

	_, ranker, err := buildCore(cfg, log)
	if err != nil {
		return err
	}

	topK := cfg.TopK
	if ideasTop > 0 {
		topK = ideasTop
	}

	// Whole-universe scans chain many upstream calls.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	ideas := ranker.Rank(ctx, topK)
	if len(ideas) == 0 {
		fmt.Println("No actionable ideas right now.")
		return nil
	}

	fmt.Printf("Top %d ideas:\n", len(ideas))
	for i, idea := range ideas {
		fmt.Printf("%2d. %-6s %-24s %s  score %3d  risk %-6s %s\n",
			i+1, idea.Symbol, idea.Name, idea.Decision, idea.Score, idea.Risk, idea.Horizon)
	}

	return nil
}
