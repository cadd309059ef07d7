package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/stockpick/advisor/internal/bot"
	"github.com/stockpick/advisor/internal/scheduler"
	"github.com/stockpick/advisor/internal/scheduler/jobs"
	"github.com/stockpick/advisor/pkg/config"
	"github.com/stockpick/advisor/pkg/logger"
	"github.com/stockpick/advisor/pkg/redis"
)

// botCmd represents the bot command
var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Start the Telegram bot",
	Long: `Starts the Telegram bot with long polling.

Commands served:
  /start            - usage help
  /check <query>    - evaluate one instrument
  /buyideas         - top ideas, deduplicated per chat

When TELEGRAM_CHAT_ID is set, a daily universe scan also pushes fresh
ideas to that chat after the US close.

Example:
  go run ./cmd/advisor bot`,
	RunE: runBot,
}

func init() {
	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if cfg.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required for the bot")
	}

	log := logger.New(cfg)

	ev, ranker, err := buildCore(cfg, log)
	if err != nil {
		return err
	}

	redisClient, err := redis.New(cfg)
	if err != nil {
		return fmt.Errorf("connect to redis: %w", err)
	}
	defer redisClient.Close()

	memory := redis.NewMemory(redisClient, cfg.Memory.Namespace)
	client := bot.NewTelegramClient(cfg.Telegram.BotToken, log)
	b := bot.NewBot(client, ev, ranker, memory, cfg.TopK, cfg.Memory.TTL, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Daily push needs a target chat; polling works without one.
	if cfg.Telegram.ChatID != "" {
		chatID, err := strconv.ParseInt(cfg.Telegram.ChatID, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}

		sched := scheduler.New(log)
		if err := sched.AddJob(jobs.NewScanJob(b, chatID, log)); err != nil {
			return fmt.Errorf("schedule scan job: %w", err)
		}
		sched.Start()
		defer sched.Stop()
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- b.Run(ctx)
	}()

	fmt.Println("Bot running, press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	select {
	case <-quit:
		cancel()
		<-errCh
	case err := <-errCh:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("bot stopped: %w", err)
		}
	}

	log.Info("Bot stopped")
	return nil
}
