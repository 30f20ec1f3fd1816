// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// DefaultEmbeddingModel is used when the configuration names none.
const DefaultEmbeddingModel = "text-embedding-3-small"

// OpenAIEmbedder implements Embedder against the OpenAI embeddings API.
type OpenAIEmbedder struct {
	client openai.Client
	model  string
}

var _ Embedder = (*OpenAIEmbedder)(nil)

// NewOpenAIEmbedder builds an embedder from configuration. Extra
// request options (e.g. a base URL override) are mainly for tests.
func NewOpenAIEmbedder(cfg types.RankerConfig, opts ...option.RequestOption) *OpenAIEmbedder {
	model := cfg.Model
	if model == "" {
		model = DefaultEmbeddingModel
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	clientOpts = append(clientOpts, opts...)

	return &OpenAIEmbedder{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

// Embed sends all texts in a single request and returns their vectors
// in input order.
func (e *OpenAIEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	resp, err := e.client.Embeddings.New(ctx, openai.EmbeddingNewParams{
		Input: openai.EmbeddingNewParamsInputUnion{OfArrayOfStrings: texts},
		Model: openai.EmbeddingModel(e.model),
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings API: %w", err)
	}
	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("embeddings API returned %d vectors for %d inputs", len(resp.Data), len(texts))
	}

	// The API reports each vector's input position; order by it rather
	// than trusting response order.
	vectors := make([][]float64, len(texts))
	for _, d := range resp.Data {
		if d.Index < 0 || int(d.Index) >= len(vectors) {
			return nil, fmt.Errorf("embeddings API returned out-of-range index %d", d.Index)
		}
		vectors[d.Index] = d.Embedding
	}
	return vectors, nil
}
