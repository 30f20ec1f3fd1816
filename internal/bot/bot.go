// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package bot serves the stored articles over the Telegram Bot API:
// long polling in, command dispatch, Markdown replies out.
package bot

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/arxiv-monitor/internal/rank"
	"github.com/pdiddy/arxiv-monitor/internal/store"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

const defaultPollTimeout = 30 * time.Second

// pollRetryDelay is the pause after a failed getUpdates call, keeping a
// broken transport (bad token, network down) from spinning hot. Tests
// override it to avoid real sleeps.
var pollRetryDelay = 5 * time.Second

// Transport abstracts the chat API so handler tests can run against a
// recording fake. Satisfied by *TelegramClient.
type Transport interface {
	GetUpdates(ctx context.Context, offset int64, timeout time.Duration) ([]Update, error)
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// Ranker scores candidate articles for /list. Satisfied by *rank.Ranker.
type Ranker interface {
	Rank(ctx context.Context, keyword string, candidates []types.Article, floor float64) ([]rank.Scored, error)
}

// handlerFunc handles one command. args is the text after the command
// name, already trimmed.
type handlerFunc func(ctx context.Context, chatID int64, args string) error

// Bot dispatches incoming commands against the store and the ranker.
type Bot struct {
	transport   Transport
	store       *store.Store
	ranker      Ranker
	windowDays  int
	pollTimeout time.Duration
	logw        io.Writer

	handlers map[string]handlerFunc
}

// New wires the bot. logw receives per-update error lines; handler
// failures never stop the poll loop.
func New(transport Transport, st *store.Store, ranker Ranker, cfg types.BotConfig, logw io.Writer) *Bot {
	pollTimeout := cfg.PollTimeout
	if pollTimeout <= 0 {
		pollTimeout = defaultPollTimeout
	}
	windowDays := cfg.WindowDays
	if windowDays <= 0 {
		windowDays = 30
	}

	b := &Bot{
		transport:   transport,
		store:       st,
		ranker:      ranker,
		windowDays:  windowDays,
		pollTimeout: pollTimeout,
		logw:        logw,
	}
	b.handlers = map[string]handlerFunc{
		"/start":  b.handleStart,
		"/stats":  b.handleStats,
		"/list":   b.handleList,
		"/search": b.handleSearch,
	}
	return b
}

// Run polls for updates until the context is cancelled. Each update is
// dispatched independently; a failing handler is logged and the loop
// moves on.
func (b *Bot) Run(ctx context.Context) error {
	var offset int64

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		updates, err := b.transport.GetUpdates(ctx, offset, b.pollTimeout)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(b.logw, "poll error: %v\n", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, u := range updates {
			if u.UpdateID >= offset {
				offset = u.UpdateID + 1
			}
			if u.Message == nil || u.Message.Text == "" {
				continue
			}
			if err := b.dispatch(ctx, u.Message.Chat.ID, u.Message.Text); err != nil {
				fmt.Fprintf(b.logw, "handler error: %v\n", err)
			}
		}
	}
}

// dispatch routes one message text to its handler. Non-command text and
// unknown commands are ignored; /summary_<id> is matched by prefix
// since the identifier is baked into the command name.
func (b *Bot) dispatch(ctx context.Context, chatID int64, text string) error {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return nil
	}

	cmd, args := splitCommand(text)

	if strings.HasPrefix(cmd, "/summary_") {
		return b.handleSummary(ctx, chatID, strings.TrimPrefix(cmd, "/summary_"))
	}
	if handler, ok := b.handlers[cmd]; ok {
		return handler(ctx, chatID, args)
	}
	return nil
}

// splitCommand separates "/list machine learning" into "/list" and
// "machine learning", stripping an @botname mention on the command.
func splitCommand(text string) (cmd, args string) {
	cmd = text
	if i := strings.IndexByte(text, ' '); i >= 0 {
		cmd, args = text[:i], strings.TrimSpace(text[i+1:])
	}
	if i := strings.IndexByte(cmd, '@'); i >= 0 {
		cmd = cmd[:i]
	}
	return cmd, args
}
