// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank orders candidate articles by semantic similarity between
// a keyword and their titles, using dense embeddings and cosine
// similarity.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

const (
	// DefaultFloor is the minimum similarity a candidate must reach
	// to appear in the ranking.
	DefaultFloor = 0.2

	// MaxCandidates bounds the candidate set callers should pass to
	// Rank, keeping per-query embedding cost flat.
	MaxCandidates = 50
)

// Embedder turns texts into fixed-dimensional vectors. The OpenAI
// implementation lives in this package; tests supply a deterministic
// one.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Scored pairs an article with its similarity to the query.
type Scored struct {
	Article types.Article
	Score   float64
}

// Ranker scores candidates against a keyword. Construct once and reuse;
// the embedder holds the only per-process state.
type Ranker struct {
	embedder Embedder
}

// New builds a Ranker around the given embedder.
func New(embedder Embedder) *Ranker {
	return &Ranker{embedder: embedder}
}

// Rank embeds the keyword and every candidate title in one batch,
// drops candidates scoring below floor, and returns the rest sorted by
// descending similarity. The sort is stable: ties keep the candidates'
// original order.
func (r *Ranker) Rank(ctx context.Context, keyword string, candidates []types.Article, floor float64) ([]Scored, error) {
	if keyword == "" {
		return nil, fmt.Errorf("empty keyword")
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(candidates)+1)
	texts = append(texts, keyword)
	for _, c := range candidates {
		texts = append(texts, c.Title)
	}

	vectors, err := r.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding query and titles: %w", err)
	}
	if len(vectors) != len(texts) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(texts))
	}

	query := vectors[0]
	scored := make([]Scored, 0, len(candidates))
	for i, c := range candidates {
		score := Cosine(query, vectors[i+1])
		if score < floor {
			continue
		}
		scored = append(scored, Scored{Article: c, Score: score})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored, nil
}

// Cosine returns the cosine similarity of two vectors, or 0 when either
// has zero magnitude or the dimensions differ.
func Cosine(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
