// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest runs the fetch → filter → persist pipeline over the
// configured topics.
package ingest

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/arxiv-monitor/internal/feed"
	"github.com/pdiddy/arxiv-monitor/internal/store"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// Fetcher pulls entries for one topic. Satisfied by *feed.Client;
// tests supply a mock.
type Fetcher interface {
	Fetch(ctx context.Context, topic string) ([]types.RawArticle, error)
}

// Saver persists a filtered batch. Satisfied by *store.Store.
type Saver interface {
	SaveBatch(ctx context.Context, articles []types.RawArticle) (store.BatchSummary, error)
}

// Pipeline wires the feed client and the store for one ingestion run.
type Pipeline struct {
	fetcher    Fetcher
	saver      Saver
	topics     []string
	windowDays int
}

// New builds a pipeline over the given topics and recency window.
func New(fetcher Fetcher, saver Saver, topics []string, windowDays int) *Pipeline {
	return &Pipeline{
		fetcher:    fetcher,
		saver:      saver,
		topics:     topics,
		windowDays: windowDays,
	}
}

// RunSummary holds aggregate counts for one ingestion run.
type RunSummary struct {
	Fetched      int
	Inserted     int
	Skipped      int
	FailedTopics int
}

// Run processes each topic in order, reporting progress on w. A failed
// topic (API error, abandoned batch) is reported and skipped; the run
// continues with the next topic and never returns an error for it.
func (p *Pipeline) Run(ctx context.Context, w io.Writer) (RunSummary, error) {
	var summary RunSummary

	for _, topic := range p.topics {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "fetching %q\n", topic)

		articles, err := p.fetcher.Fetch(ctx, topic)
		if err != nil {
			fmt.Fprintf(w, "failed  %q: %v\n", topic, err)
			summary.FailedTopics++
			continue
		}
		summary.Fetched += len(articles)

		recent := feed.FilterRecent(articles, p.windowDays, time.Now())

		batch, err := p.saver.SaveBatch(ctx, recent)
		if err != nil {
			fmt.Fprintf(w, "failed  %q: %v\n", topic, err)
			summary.FailedTopics++
			continue
		}

		fmt.Fprintf(w, "saved   %q: %d new, %d already stored\n",
			topic, batch.Inserted, batch.Skipped)
		summary.Inserted += batch.Inserted
		summary.Skipped += batch.Skipped
	}

	fmt.Fprintf(w, "\nfetched: %d, inserted: %d, skipped: %d, failed topics: %d\n",
		summary.Fetched, summary.Inserted, summary.Skipped, summary.FailedTopics)
	return summary, nil
}
