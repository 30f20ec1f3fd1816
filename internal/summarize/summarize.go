// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summarize fills in missing article summaries by calling a
// text-generation API and writing the result to disk and to the store.
package summarize

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

const (
	systemPrompt = "You are an assistant that summarizes research papers."
	userPromptFmt = "Summarize the research paper titled:\n\n%s"

	// maxFilenameTitle caps the sanitized title prefix in summary
	// filenames.
	maxFilenameTitle = 64
)

// Backend abstracts the text-generation API so tests can supply a mock.
type Backend interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Updater records a finished summary. Satisfied by *store.Store.
type Updater interface {
	ListMissingSummaries(ctx context.Context) ([]types.Article, error)
	SetSummary(ctx context.Context, id int64, summary, path string) error
}

// Summarizer walks the unsummarized backlog.
type Summarizer struct {
	store     Updater
	backend   Backend
	outputDir string
}

// New builds a Summarizer writing files under cfg.OutputDir.
func New(store Updater, backend Backend, cfg types.SummarizerConfig) *Summarizer {
	outputDir := cfg.OutputDir
	if outputDir == "" {
		outputDir = "data/summaries"
	}
	return &Summarizer{store: store, backend: backend, outputDir: outputDir}
}

// BatchSummary holds counts from one ProcessAll run.
type BatchSummary struct {
	Summarized int
	Failed     int
}

// ProcessAll summarizes every article with no stored summary, reporting
// progress on w. A failed article (API error, write error) is reported
// and skipped with nothing persisted, so the next run retries it.
func (s *Summarizer) ProcessAll(ctx context.Context, w io.Writer) (BatchSummary, error) {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return BatchSummary{}, fmt.Errorf("creating output directory: %w", err)
	}

	articles, err := s.store.ListMissingSummaries(ctx)
	if err != nil {
		return BatchSummary{}, err
	}

	var summary BatchSummary
	for _, article := range articles {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		fmt.Fprintf(w, "summarizing %d %q\n", article.ID, article.Title)

		if err := s.processOne(ctx, article); err != nil {
			fmt.Fprintf(w, "failed  %d: %v\n", article.ID, err)
			summary.Failed++
			continue
		}
		summary.Summarized++
	}

	fmt.Fprintf(w, "\nsummarized: %d, failed: %d\n", summary.Summarized, summary.Failed)
	return summary, nil
}

// processOne generates and persists one summary. The file is written
// before the store update and removed again if that update fails, so
// summary and summary_path never diverge.
func (s *Summarizer) processOne(ctx context.Context, article types.Article) error {
	text, err := s.backend.Complete(ctx, systemPrompt, fmt.Sprintf(userPromptFmt, article.Title))
	if err != nil {
		return fmt.Errorf("generating summary: %w", err)
	}
	if text == "" {
		return fmt.Errorf("backend returned empty summary")
	}

	path := filepath.Join(s.outputDir, summaryFilename(article.Title, article.ID))
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("writing summary file: %w", err)
	}

	if err := s.store.SetSummary(ctx, article.ID, text, path); err != nil {
		os.Remove(path)
		return fmt.Errorf("storing summary: %w", err)
	}
	return nil
}

// summaryFilename derives a safe filename from the title: every
// non-alphanumeric byte becomes '_', the prefix is capped, and the
// article ID keeps names unique across similar titles.
func summaryFilename(title string, id int64) string {
	sanitized := make([]byte, 0, len(title))
	for i := 0; i < len(title); i++ {
		c := title[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			sanitized = append(sanitized, c)
		default:
			sanitized = append(sanitized, '_')
		}
	}
	if len(sanitized) > maxFilenameTitle {
		sanitized = sanitized[:maxFilenameTitle]
	}
	return fmt.Sprintf("%s_%d.txt", sanitized, id)
}
