// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-monitor/internal/secrets"
	"github.com/pdiddy/arxiv-monitor/internal/store"
	"github.com/pdiddy/arxiv-monitor/internal/summarize"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Generate summaries for stored articles that lack one",
	Long: `Summarize walks the articles without a summary, asks the OpenAI chat API
for a short summary of each, writes the text to the output directory, and
records it in the database. Articles that fail are reported and left for the
next run.`,
	RunE: runSummarize,
}

func init() {
	summarizeCmd.Flags().String("model", "", "chat-completion model (default gpt-4o)")
	summarizeCmd.Flags().String("output-dir", "", "directory for summary files (default data/summaries)")

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(cmd *cobra.Command, args []string) error {
	apiKey := secrets.Resolve(loadedSecrets, "openai-api-key")
	if apiKey == "" {
		return fmt.Errorf("no OpenAI API key: set OPENAI_API_KEY or .secrets/openai-api-key")
	}

	model, _ := cmd.Flags().GetString("model")
	if model == "" {
		model = viper.GetString("summarizer.model")
	}
	outputDir, _ := cmd.Flags().GetString("output-dir")
	if outputDir == "" {
		outputDir = viper.GetString("summarizer.output_dir")
	}

	cfg := types.SummarizerConfig{
		Model:     model,
		APIKey:    apiKey,
		OutputDir: outputDir,
	}

	st, err := store.Open(databasePath(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	summarizer := summarize.New(st, summarize.NewOpenAIBackend(cfg), cfg)
	summary, err := summarizer.ProcessAll(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d article(s) failed summarization", summary.Failed)
	}
	return nil
}
