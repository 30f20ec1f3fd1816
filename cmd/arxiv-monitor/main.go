// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the arxiv-monitor CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/arxiv-monitor/internal/secrets"
)

// version is set at build time via ldflags.
var version = "dev"

// loadedSecrets holds API keys loaded from .secrets/ at startup.
var loadedSecrets map[string]string

// rootCmd is the base command for the arxiv-monitor CLI.
var rootCmd = &cobra.Command{
	Use:   "arxiv-monitor",
	Short: "Monitor arXiv for new papers, summarize them, serve them over Telegram",
	Long: `arxiv-monitor polls the arXiv Atom API for recent papers matching a set
of topics, deduplicates them into a local SQLite database, generates OpenAI
summaries, and serves the collection through a Telegram bot with
embedding-based keyword ranking.

Each pipeline stage is a subcommand: fetch, summarize, and bot. stats prints
database counts without touching the network.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; a missing file is not an error.
		_ = godotenv.Load()

		s, err := secrets.Load(".secrets/")
		if err != nil {
			return err
		}
		loadedSecrets = s
		if len(s) > 0 {
			keys := make([]string, 0, len(s))
			for k := range s {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			fmt.Fprintf(os.Stderr, "Loaded secrets: %v\n", keys)
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./arxiv-monitor.yaml or ~/.config/arxiv-monitor/config.yaml)")
	rootCmd.PersistentFlags().String("database", "", "path to the SQLite database (default arxiv.db)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("arxiv-monitor")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "arxiv-monitor"))
		}
	}

	viper.SetDefault("database.path", "arxiv.db")
	viper.SetDefault("feed.topics", "machine learning,artificial intelligence,data science")
	viper.SetDefault("feed.max_results", 50)
	viper.SetDefault("feed.window_days", 30)
	viper.SetDefault("summarizer.model", "gpt-4o")
	viper.SetDefault("summarizer.output_dir", "data/summaries")
	viper.SetDefault("ranker.model", "text-embedding-3-small")
	viper.SetDefault("bot.poll_timeout", 30*time.Second)

	viper.SetEnvPrefix("ARXIV_MONITOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// databasePath resolves the database location: flag, then config.
func databasePath(cmd *cobra.Command) string {
	if p, _ := cmd.Flags().GetString("database"); p != "" {
		return p
	}
	return viper.GetString("database.path")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
