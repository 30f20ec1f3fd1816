// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bot

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-monitor/internal/httputil"
)

// telegramAPIBase is the Bot API host. Declared as a var so tests can
// substitute an httptest server.
var telegramAPIBase = "https://api.telegram.org"

// Update is one incoming event from getUpdates. Only message updates
// are of interest; everything else leaves Message nil.
type Update struct {
	UpdateID int64    `json:"update_id"`
	Message  *Message `json:"message"`
}

// Message is an incoming chat message.
type Message struct {
	Chat Chat   `json:"chat"`
	Text string `json:"text"`
}

// Chat identifies where to send the reply.
type Chat struct {
	ID int64 `json:"id"`
}

// TelegramClient is a minimal Bot API client: long polling in, Markdown
// messages out.
type TelegramClient struct {
	token  string
	client *http.Client
}

// NewTelegramClient wires the bot token. The HTTP timeout leaves
// headroom over the long-poll window; a non-positive pollTimeout falls
// back to the same default the poll loop uses, so an unconfigured
// client never times out under the getUpdates window.
func NewTelegramClient(token string, pollTimeout time.Duration) *TelegramClient {
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	return &TelegramClient{
		token:  token,
		client: &http.Client{Timeout: pollTimeout + 10*time.Second},
	}
}

// apiResponse is the Bot API envelope.
type apiResponse struct {
	OK          bool            `json:"ok"`
	Description string          `json:"description"`
	Result      json.RawMessage `json:"result"`
}

// GetUpdates long-polls for updates with IDs >= offset.
func (c *TelegramClient) GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error) {
	params := url.Values{}
	params.Set("offset", strconv.FormatInt(offset, 10))
	params.Set("timeout", strconv.Itoa(int(timeout.Seconds())))

	endpoint := fmt.Sprintf("%s/bot%s/getUpdates?%s", telegramAPIBase, c.token, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("getUpdates request: %w", err)
	}
	defer resp.Body.Close()

	result, err := decodeResponse(resp)
	if err != nil {
		return nil, fmt.Errorf("getUpdates: %w", err)
	}

	var updates []Update
	if err := json.Unmarshal(result, &updates); err != nil {
		return nil, fmt.Errorf("parsing updates: %w", err)
	}
	return updates, nil
}

// SendMessage posts a Markdown message to the chat. Telegram rate
// limits with 429, so the send path goes through the retry helper.
func (c *TelegramClient) SendMessage(ctx context.Context, chatID int64, text string) error {
	form := url.Values{}
	form.Set("chat_id", strconv.FormatInt(chatID, 10))
	form.Set("text", text)
	form.Set("parse_mode", "Markdown")

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", telegramAPIBase, c.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := httputil.DoWithRetry(ctx, c.client, req, 0)
	if err != nil {
		return fmt.Errorf("sendMessage request: %w", err)
	}
	defer resp.Body.Close()

	if _, err := decodeResponse(resp); err != nil {
		return fmt.Errorf("sendMessage: %w", err)
	}
	return nil
}

// decodeResponse unwraps the Bot API envelope, turning HTTP and
// API-level failures into errors.
func decodeResponse(resp *http.Response) (json.RawMessage, error) {
	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	var envelope apiResponse
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("telegram returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if !envelope.OK {
		return nil, fmt.Errorf("telegram error: %s", envelope.Description)
	}
	return envelope.Result, nil
}
