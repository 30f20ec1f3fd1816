// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"
	"math"
	"testing"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// fakeEmbedder maps each text to a fixed vector, so similarities are
// fully deterministic.
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		v, ok := f.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no vector for %q", text)
		}
		out[i] = v
	}
	return out, nil
}

func articles(titles ...string) []types.Article {
	out := make([]types.Article, len(titles))
	for i, title := range titles {
		out[i] = types.Article{ID: int64(i + 1), Title: title}
	}
	return out
}

func TestRank(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"transformers": {1, 0},
		"close match":  {0.9, 0.1},
		"orthogonal":   {0, 1},
		"halfway":      {1, 1},
	}}
	ranker := New(embedder)

	got, err := ranker.Rank(context.Background(), "transformers",
		articles("orthogonal", "halfway", "close match"), DefaultFloor)
	if err != nil {
		t.Fatalf("Rank: %v", err)
	}

	// "orthogonal" scores 0 and falls below the floor.
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Article.Title != "close match" {
		t.Errorf("first = %q, want highest similarity first", got[0].Article.Title)
	}
	if got[1].Article.Title != "halfway" {
		t.Errorf("second = %q", got[1].Article.Title)
	}
	if got[0].Score <= got[1].Score {
		t.Errorf("scores not descending: %f then %f", got[0].Score, got[1].Score)
	}
	if embedder.calls != 1 {
		t.Errorf("embedder called %d times, want one batch", embedder.calls)
	}
}

func TestRankStableOnTies(t *testing.T) {
	// Both candidates share the query's vector, so both score 1.
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"q":      {1, 0},
		"first":  {1, 0},
		"second": {2, 0},
	}}
	ranker := New(embedder)

	got, err := ranker.Rank(context.Background(), "q", articles("first", "second"), 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}
	if got[0].Article.Title != "first" || got[1].Article.Title != "second" {
		t.Errorf("tie order changed: %q, %q", got[0].Article.Title, got[1].Article.Title)
	}
}

func TestRankEdgeCases(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{"q": {1, 0}}}
	ranker := New(embedder)

	t.Run("empty keyword", func(t *testing.T) {
		if _, err := ranker.Rank(context.Background(), "", articles("a"), 0); err == nil {
			t.Fatal("expected error for empty keyword")
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		got, err := ranker.Rank(context.Background(), "q", nil, 0)
		if err != nil {
			t.Fatal(err)
		}
		if got != nil {
			t.Errorf("got %v, want nil", got)
		}
		if embedder.calls != 0 {
			t.Errorf("embedder called with no candidates")
		}
	})

	t.Run("embedder failure", func(t *testing.T) {
		failing := New(&fakeEmbedder{err: fmt.Errorf("api down")})
		if _, err := failing.Rank(context.Background(), "q", articles("a"), 0); err == nil {
			t.Fatal("expected error when embedder fails")
		}
	})
}

func TestRankAllBelowFloor(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"q": {1, 0},
		"a": {0, 1},
		"b": {-1, 0},
	}}
	ranker := New(embedder)

	got, err := ranker.Rank(context.Background(), "q", articles("a", "b"), DefaultFloor)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestCosine(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"scaled", []float64{1, 1}, []float64{5, 5}, 1},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"dimension mismatch", []float64{1}, []float64{1, 0}, 0},
		{"both empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Cosine(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Cosine = %f, want %f", got, tt.want)
			}
		})
	}
}
