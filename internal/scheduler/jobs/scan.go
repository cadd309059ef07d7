// Package jobs holds the concrete scheduled jobs.
package jobs

import (
	"context"
	"fmt"

	"github.com/stockpick/advisor/internal/bot"
	"github.com/stockpick/advisor/pkg/logger"
)

// ScanJob runs the daily universe scan and pushes fresh ideas to the
// configured chat. Dedup in the bot keeps repeated runs quiet.
type ScanJob struct {
	bot    *bot.Bot
	chatID int64
	logger *logger.Logger
}

// NewScanJob creates the daily scan job.
func NewScanJob(b *bot.Bot, chatID int64, log *logger.Logger) *ScanJob {
	return &ScanJob{
		bot:    b,
		chatID: chatID,
		logger: log,
	}
}

// Name returns the job name
func (j *ScanJob) Name() string {
	return "universe_scan"
}

// Schedule runs after the US close, weekdays only (UTC).
func (j *ScanJob) Schedule() string {
	return "0 30 21 * * 1-5"
}

// Run executes the scan and push.
func (j *ScanJob) Run(ctx context.Context) error {
	j.logger.Info("Starting scheduled universe scan")

	if err := j.bot.PushIdeas(ctx, j.chatID); err != nil {
		return fmt.Errorf("push ideas: %w", err)
	}
	return nil
}
