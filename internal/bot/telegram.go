// Package bot provides the Telegram front end: a thin Bot API client,
// a long-polling command loop, and the result formatter.
package bot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/stockpick/advisor/pkg/logger"
)

const (
	telegramAPIBase = "https://api.telegram.org"
	pollTimeoutSecs = 30
	pollRetryDelay  = 5 * time.Second
)

// TelegramClient talks to the Telegram Bot API over plain HTTP.
type TelegramClient struct {
	token      string
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// NewTelegramClient creates a client for the given bot token.
func NewTelegramClient(token string, log *logger.Logger) *TelegramClient {
	return &TelegramClient{
		token:   token,
		baseURL: telegramAPIBase,
		httpClient: &http.Client{
			// Long polls hold the connection for pollTimeoutSecs.
			Timeout: (pollTimeoutSecs + 5) * time.Second,
		},
		logger: log,
	}
}

// Send delivers a text message to a chat.
func (t *TelegramClient) Send(ctx context.Context, chatID int64, text string) error {
	payload := map[string]string{
		"chat_id": strconv.FormatInt(chatID, 10),
		"text":    text,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("telegram sendMessage: status %d: %s", resp.StatusCode, respBody)
	}
	return nil
}

// Update is one incoming Telegram update.
type Update struct {
	UpdateID int `json:"update_id"`
	Message  *struct {
		Text string `json:"text"`
		Chat struct {
			ID int64 `json:"id"`
		} `json:"chat"`
	} `json:"message"`
}

// getUpdates long-polls for new updates past offset.
func (t *TelegramClient) getUpdates(ctx context.Context, offset int) ([]Update, error) {
	url := fmt.Sprintf("%s/bot%s/getUpdates?offset=%d&timeout=%d", t.baseURL, t.token, offset, pollTimeoutSecs)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll updates: %w", err)
	}
	defer resp.Body.Close()

	var result struct {
		OK     bool     `json:"ok"`
		Result []Update `json:"result"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode updates: %w", err)
	}
	if !result.OK {
		return nil, fmt.Errorf("telegram getUpdates: status %d", resp.StatusCode)
	}
	return result.Result, nil
}
