// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bot

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/arxiv-monitor/internal/rank"
	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

const startText = `Hi! I keep track of recent arXiv papers. Commands:
/stats — article counts per period
/list <keyword> — recent articles ranked by keyword relevance
/search <title> — look up an article by title
/summary_<id> — show the stored summary for an article

Try /stats or /list machine learning`

func (b *Bot) handleStart(ctx context.Context, chatID int64, _ string) error {
	return b.transport.SendMessage(ctx, chatID, startText)
}

// statsPeriods are the /stats windows, in days.
var statsPeriods = []struct {
	label string
	days  int
}{
	{"Today", 1},
	{"This week", 7},
	{"This month", 30},
	{"This year", 365},
}

func (b *Bot) handleStats(ctx context.Context, chatID int64, _ string) error {
	var sb strings.Builder
	sb.WriteString("📊 Article stats:\n")
	for _, p := range statsPeriods {
		count, err := b.store.CountSince(ctx, p.days)
		if err != nil {
			return fmt.Errorf("counting %d-day window: %w", p.days, err)
		}
		fmt.Fprintf(&sb, "%s: %d\n", p.label, count)
	}
	return b.transport.SendMessage(ctx, chatID, strings.TrimRight(sb.String(), "\n"))
}

func (b *Bot) handleList(ctx context.Context, chatID int64, keyword string) error {
	if keyword == "" {
		return b.transport.SendMessage(ctx, chatID,
			"❌ Give me a keyword to rank articles by.\nFor example: `/list LLM`")
	}

	candidates, err := b.store.ListSince(ctx, b.windowDays, "", rank.MaxCandidates)
	if err != nil {
		return fmt.Errorf("listing candidates: %w", err)
	}

	ranked, err := b.ranker.Rank(ctx, keyword, candidates, rank.DefaultFloor)
	if err != nil {
		return fmt.Errorf("ranking candidates: %w", err)
	}

	items := make([]string, 0, len(ranked))
	for _, r := range ranked {
		items = append(items, formatListItem(r))
	}

	header := fmt.Sprintf("📋 Articles from the last %d days matching %q:", b.windowDays, keyword)
	empty := fmt.Sprintf("❌ No articles matching %q in the last %d days.", keyword, b.windowDays)
	for _, msg := range render(header, items, empty) {
		if err := b.transport.SendMessage(ctx, chatID, msg); err != nil {
			return err
		}
	}
	return nil
}

// formatListItem renders one ranked result as a Markdown list entry.
func formatListItem(r rank.Scored) string {
	a := r.Article

	summaryLink := "summary pending"
	if a.SummaryPath != "" {
		summaryLink = fmt.Sprintf("/summary_%d", a.ID)
	}
	pdfLink := "no pdf"
	if a.PDFURL != "" {
		pdfLink = fmt.Sprintf("[pdf](%s)", a.PDFURL)
	}

	return fmt.Sprintf("- %s (%s, score %.2f)\n  %s | %s",
		a.Title, a.PublishedDate.Format("2006-01-02"), r.Score, pdfLink, summaryLink)
}

func (b *Bot) handleSearch(ctx context.Context, chatID int64, query string) error {
	if query == "" {
		return b.transport.SendMessage(ctx, chatID, "🔍 Give me a title to search for.")
	}

	article, err := b.store.FindByTitle(ctx, query)
	if err != nil {
		return fmt.Errorf("searching by title: %w", err)
	}
	if article == nil {
		return b.transport.SendMessage(ctx, chatID,
			fmt.Sprintf("No article with a title matching %q.", query))
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📄 Found:\nTitle: %s\nPublished: %s\n",
		article.Title, article.PublishedDate.Format("2006-01-02"))
	if article.PDFURL != "" {
		fmt.Fprintf(&sb, "🔗 [pdf](%s)\n", article.PDFURL)
	}
	if article.HasSummary() {
		fmt.Fprintf(&sb, "\nSummary: %s", article.Summary)
	} else {
		sb.WriteString("\nSummary: not generated yet")
	}

	for _, msg := range splitMessage(sb.String(), messageLimit) {
		if err := b.transport.SendMessage(ctx, chatID, msg); err != nil {
			return err
		}
	}
	return nil
}

// handleSummary serves /summary_<id>. A non-numeric suffix is a user
// error answered directly, with no store lookup.
func (b *Bot) handleSummary(ctx context.Context, chatID int64, suffix string) error {
	id, err := strconv.ParseInt(suffix, 10, 64)
	if err != nil {
		return b.transport.SendMessage(ctx, chatID,
			"❌ Invalid format. Use /summary_<id> with a numeric identifier.")
	}

	article, err := b.store.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("looking up article %d: %w", id, err)
	}
	if article == nil {
		return b.transport.SendMessage(ctx, chatID,
			fmt.Sprintf("No article with id %d.", id))
	}
	if !article.HasSummary() {
		return b.transport.SendMessage(ctx, chatID,
			fmt.Sprintf("No summary yet for %q.", article.Title))
	}

	text := summaryText(*article)
	for _, msg := range splitMessage(text, messageLimit) {
		if err := b.transport.SendMessage(ctx, chatID, msg); err != nil {
			return err
		}
	}
	return nil
}

func summaryText(a types.Article) string {
	return fmt.Sprintf("📝 %s\n\n%s", a.Title, a.Summary)
}
