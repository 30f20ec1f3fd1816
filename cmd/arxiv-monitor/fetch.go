// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-monitor/internal/feed"
	"github.com/pdiddy/arxiv-monitor/internal/ingest"
	"github.com/pdiddy/arxiv-monitor/internal/store"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

const (
	defaultTimeout   = 60 * time.Second
	defaultUserAgent = "arxiv-monitor/0.1"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch [topics...]",
	Short: "Fetch recent arXiv papers and store new ones",
	Long: `Fetch queries the arXiv Atom API for each topic, keeps entries published
within the recency window, and inserts the new ones into the database.
Articles already present (matched by PDF URL) are skipped.

Topics come from arguments, --topics-file, or the feed.topics config key.`,
	RunE: runFetch,
}

func init() {
	fetchCmd.Flags().Duration("timeout", 0, "HTTP request timeout (default 60s)")
	fetchCmd.Flags().Int("window-days", 0, "recency window in days (default 30)")
	fetchCmd.Flags().Int("max-results", 0, "entries requested per topic (default 50)")
	fetchCmd.Flags().String("topics-file", "", "YAML file listing topics to fetch")

	rootCmd.AddCommand(fetchCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	topics, err := fetchTopics(cmd, args)
	if err != nil {
		return err
	}
	if len(topics) == 0 {
		return fmt.Errorf("no topics: pass them as arguments, via --topics-file, or set feed.topics")
	}

	cfg := feedConfig(cmd, topics)

	st, err := store.Open(databasePath(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	pipeline := ingest.New(feed.NewClient(cfg), st, cfg.Topics, cfg.WindowDays)
	summary, err := pipeline.Run(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.FailedTopics > 0 {
		return fmt.Errorf("%d topic(s) failed to fetch", summary.FailedTopics)
	}
	return nil
}

// fetchTopics resolves the topic list: arguments win, then the topics
// file, then the feed.topics config value (comma-separated).
func fetchTopics(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	if path, _ := cmd.Flags().GetString("topics-file"); path != "" {
		return feed.ReadTopicsFile(path)
	}
	return feed.SplitTopics(viper.GetString("feed.topics")), nil
}

func feedConfig(cmd *cobra.Command, topics []string) types.FeedConfig {
	timeout, _ := cmd.Flags().GetDuration("timeout")
	if timeout == 0 {
		timeout = defaultTimeout
	}
	windowDays, _ := cmd.Flags().GetInt("window-days")
	if windowDays == 0 {
		windowDays = viper.GetInt("feed.window_days")
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = viper.GetInt("feed.max_results")
	}

	return types.FeedConfig{
		HTTPConfig: types.HTTPConfig{
			Timeout:   timeout,
			UserAgent: defaultUserAgent,
		},
		Topics:     topics,
		MaxResults: maxResults,
		WindowDays: windowDays,
	}
}
