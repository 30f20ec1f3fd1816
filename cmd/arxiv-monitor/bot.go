// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-monitor/internal/bot"
	"github.com/pdiddy/arxiv-monitor/internal/rank"
	"github.com/pdiddy/arxiv-monitor/internal/secrets"
	"github.com/pdiddy/arxiv-monitor/internal/store"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

var botCmd = &cobra.Command{
	Use:   "bot",
	Short: "Run the Telegram bot serving the article collection",
	Long: `Bot long-polls the Telegram API and answers commands against the local
database: /start, /stats, /list <keyword>, /search <title>, and
/summary_<id>. /list ranks recent articles against the keyword with OpenAI
embeddings. Runs until interrupted.`,
	RunE: runBot,
}

func init() {
	botCmd.Flags().Duration("poll-timeout", 0, "Telegram long-poll timeout (default 30s)")
	botCmd.Flags().Int("window-days", 0, "lookback window for /list in days (default 30)")

	rootCmd.AddCommand(botCmd)
}

func runBot(cmd *cobra.Command, args []string) error {
	token := secrets.Resolve(loadedSecrets, "telegram-bot-token")
	if token == "" {
		return fmt.Errorf("no Telegram bot token: set TELEGRAM_API_KEY or .secrets/telegram-bot-token")
	}
	apiKey := secrets.Resolve(loadedSecrets, "openai-api-key")
	if apiKey == "" {
		return fmt.Errorf("no OpenAI API key: set OPENAI_API_KEY or .secrets/openai-api-key")
	}

	pollTimeout, _ := cmd.Flags().GetDuration("poll-timeout")
	if pollTimeout == 0 {
		pollTimeout = viper.GetDuration("bot.poll_timeout")
	}
	windowDays, _ := cmd.Flags().GetInt("window-days")
	if windowDays == 0 {
		windowDays = viper.GetInt("feed.window_days")
	}

	cfg := types.BotConfig{
		Token:       token,
		PollTimeout: pollTimeout,
		WindowDays:  windowDays,
	}
	rankerCfg := types.RankerConfig{
		Model:  viper.GetString("ranker.model"),
		APIKey: apiKey,
	}

	st, err := store.Open(databasePath(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	transport := bot.NewTelegramClient(cfg.Token, cfg.PollTimeout)
	ranker := rank.New(rank.NewOpenAIEmbedder(rankerCfg))

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "Bot started, press Ctrl-C to stop")
	if err := bot.New(transport, st, ranker, cfg, os.Stderr).Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
