package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/stockpick/advisor/internal/contracts"
	"github.com/stockpick/advisor/pkg/logger"
	"github.com/stockpick/advisor/pkg/redis"
)

// symbolEvaluator evaluates one free-text query.
type symbolEvaluator interface {
	Evaluate(ctx context.Context, query string) (contracts.EvalResult, error)
}

// ideaRanker returns the ranked universe candidates.
type ideaRanker interface {
	Rank(ctx context.Context, topK int) []contracts.EvalResult
}

// dedupMemory remembers idea fingerprints per recipient.
type dedupMemory interface {
	Fingerprint(recipient, payload string) string
	Exists(ctx context.Context, key string) (bool, error)
	SetWithTTL(ctx context.Context, key string, ttl time.Duration, value string) error
}

var _ dedupMemory = (*redis.Memory)(nil)

const startMessage = `Stock advisor bot.
Commands:
/check <symbol or name> - evaluate one instrument
/buyideas - top ideas from the watch universe`

// Bot wires the Telegram client to the evaluation core.
type Bot struct {
	client    *TelegramClient
	evaluator symbolEvaluator
	ranker    ideaRanker
	memory    dedupMemory
	topK      int
	memoryTTL time.Duration
	logger    *logger.Logger
}

// NewBot creates the command front end.
func NewBot(client *TelegramClient, ev symbolEvaluator, ranker ideaRanker, memory dedupMemory, topK int, memoryTTL time.Duration, log *logger.Logger) *Bot {
	return &Bot{
		client:    client,
		evaluator: ev,
		ranker:    ranker,
		memory:    memory,
		topK:      topK,
		memoryTTL: memoryTTL,
		logger:    log,
	}
}

// Run long-polls for commands until the context is cancelled.
func (b *Bot) Run(ctx context.Context) error {
	b.logger.Info("Starting Telegram bot")

	offset := 0
	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Telegram bot stopped")
			return ctx.Err()
		default:
		}

		updates, err := b.client.getUpdates(ctx, offset)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logger.WithError(err).Warn("Polling failed, retrying")
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			offset = update.UpdateID + 1
			if update.Message == nil || update.Message.Text == "" {
				continue
			}

			chatID := update.Message.Chat.ID
			reply := b.HandleCommand(ctx, chatID, update.Message.Text)
			if reply == "" {
				continue
			}
			if err := b.client.Send(ctx, chatID, reply); err != nil {
				b.logger.WithError(err).Error("Failed to send reply")
			}
		}
	}
}

// PushIdeas ranks the universe and sends the fresh ideas to the chat.
// Unlike /buyideas nothing at all is sent when no idea is new, so a
// scheduled push stays silent instead of repeating itself.
func (b *Bot) PushIdeas(ctx context.Context, chatID int64) error {
	ideas := b.ranker.Rank(ctx, b.topK)
	fresh := b.filterFresh(ctx, chatID, ideas)
	if len(fresh) == 0 {
		b.logger.Info("No fresh ideas to push")
		return nil
	}
	return b.client.Send(ctx, chatID, FormatIdeas(fresh))
}

// HandleCommand dispatches one chat command and returns the reply text.
func (b *Bot) HandleCommand(ctx context.Context, chatID int64, text string) string {
	fields := strings.Fields(strings.TrimSpace(text))
	if len(fields) == 0 {
		return ""
	}

	command := strings.ToLower(fields[0])
	// Group chats address commands as /check@BotName.
	if at := strings.Index(command, "@"); at > 0 {
		command = command[:at]
	}

	b.logger.WithFields(map[string]interface{}{
		"chat_id": chatID,
		"command": command,
	}).Info("Command received")

	switch command {
	case "/start":
		return startMessage

	case "/check":
		if len(fields) < 2 {
			return "Usage: /check <symbol or name>"
		}
		return b.check(ctx, strings.Join(fields[1:], " "))

	case "/buyideas":
		return b.buyIdeas(ctx, chatID)

	default:
		return "Unknown command. Try /start."
	}
}

func (b *Bot) check(ctx context.Context, query string) string {
	result, err := b.evaluator.Evaluate(ctx, query)
	if err != nil {
		b.logger.WithFields(map[string]interface{}{
			"query": query,
			"error": err.Error(),
		}).Warn("Check failed")
		return fmt.Sprintf("Could not evaluate %q: no matching instrument or data unavailable.", query)
	}
	return FormatResult(result)
}

// buyIdeas ranks the universe and drops ideas already sent to this chat
// within the memory TTL.
func (b *Bot) buyIdeas(ctx context.Context, chatID int64) string {
	ideas := b.ranker.Rank(ctx, b.topK)
	if len(ideas) == 0 {
		return "No actionable ideas right now."
	}

	fresh := b.filterFresh(ctx, chatID, ideas)
	if len(fresh) == 0 {
		return "No new ideas since the last check."
	}
	return FormatIdeas(fresh)
}

// filterFresh keeps the ideas whose fingerprint is not yet remembered for
// this chat and remembers the kept ones. Memory errors fail open: the idea
// is sent rather than silently dropped.
func (b *Bot) filterFresh(ctx context.Context, chatID int64, ideas []contracts.EvalResult) []contracts.EvalResult {
	recipient := strconv.FormatInt(chatID, 10)

	fresh := make([]contracts.EvalResult, 0, len(ideas))
	for _, idea := range ideas {
		payload := ideaPayload(idea)
		key := b.memory.Fingerprint(recipient, payload)

		seen, err := b.memory.Exists(ctx, key)
		if err != nil {
			b.logger.WithError(err).Warn("Dedup lookup failed, sending anyway")
		}
		if seen {
			continue
		}

		if err := b.memory.SetWithTTL(ctx, key, b.memoryTTL, payload); err != nil {
			b.logger.WithError(err).Warn("Dedup store failed")
		}
		fresh = append(fresh, idea)
	}
	return fresh
}

// ideaPayload is the stable projection fingerprinted for dedup: a changed
// decision or score makes the idea new again.
func ideaPayload(idea contracts.EvalResult) string {
	return fmt.Sprintf("%s|%s|%d", idea.Symbol, idea.Decision, idea.Score)
}
