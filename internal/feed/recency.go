// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package feed

import (
	"time"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// FilterRecent keeps entries published within the trailing window.
// The boundary is inclusive: an entry published exactly windowDays ago
// is retained. Comparison happens in UTC.
func FilterRecent(articles []types.RawArticle, windowDays int, now time.Time) []types.RawArticle {
	cutoff := now.UTC().AddDate(0, 0, -windowDays)

	recent := make([]types.RawArticle, 0, len(articles))
	for _, a := range articles {
		if !a.Published.Before(cutoff) {
			recent = append(recent, a)
		}
	}
	return recent
}
