// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Notifier delivers best-effort messages to users. Deliveries must never
// be load-bearing: callers log failures and carry on.
type Notifier interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Telegram sends messages through the Telegram Bot API.
type Telegram struct {
	token   string
	baseURL string
	client  *http.Client
}

const defaultBaseURL = "https://api.telegram.org"

func NewTelegram(token string) *Telegram {
	return NewTelegramWithBaseURL(token, defaultBaseURL)
}

// NewTelegramWithBaseURL exists so tests can point the client at a fake
// Bot API server.
func NewTelegramWithBaseURL(token, baseURL string) *Telegram {
	return &Telegram{
		token:   token,
		baseURL: baseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (t *Telegram) SendMessage(ctx context.Context, chatID int64, text string) error {
	payload, err := json.Marshal(map[string]any{
		"chat_id": chatID,
		"text":    text,
	})
	if err != nil {
		return fmt.Errorf("encode sendMessage payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", t.baseURL, t.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build sendMessage request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("sendMessage to %d: %w", chatID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Typical case: the user blocked the bot (403).
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sendMessage to %d: status %d: %s", chatID, resp.StatusCode, body)
	}
	return nil
}

// Nop discards all messages. Used in tests and when notifications are
// not configured.
type Nop struct{}

func (Nop) SendMessage(context.Context, int64, string) error { return nil }
