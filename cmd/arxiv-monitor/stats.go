// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/arxiv-monitor/internal/store"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print article counts for standard periods",
	Long: `Stats reports how many stored articles were published today, this week,
this month, this year, and in total. Reads only the local database.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	st, err := store.Open(databasePath(cmd))
	if err != nil {
		return err
	}
	defer st.Close()

	periods := []struct {
		label string
		days  int
	}{
		{"Today", 1},
		{"This week", 7},
		{"This month", 30},
		{"This year", 365},
		{"Total", 0},
	}

	ctx := context.Background()
	for _, p := range periods {
		count, err := st.CountSince(ctx, p.days)
		if err != nil {
			return err
		}
		fmt.Printf("%-10s %d\n", p.label, count)
	}
	return nil
}
