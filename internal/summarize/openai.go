// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package summarize

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/pdiddy/arxiv-monitor/pkg/types"
)

// DefaultModel is used when the configuration names none.
const DefaultModel = "gpt-4o"

// Sampling parameters for summary generation. Short, slightly creative
// completions.
const (
	maxTokens   = 300
	temperature = 0.7
)

// OpenAIBackend implements Backend against the OpenAI chat-completions
// API.
type OpenAIBackend struct {
	client openai.Client
	model  string
}

var _ Backend = (*OpenAIBackend)(nil)

// NewOpenAIBackend builds a backend from configuration. Extra request
// options (e.g. a base URL override) are mainly for tests.
func NewOpenAIBackend(cfg types.SummarizerConfig, opts ...option.RequestOption) *OpenAIBackend {
	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	clientOpts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	clientOpts = append(clientOpts, opts...)

	return &OpenAIBackend{
		client: openai.NewClient(clientOpts...),
		model:  model,
	}
}

// Complete sends the system/user prompt pair and returns the trimmed
// completion text.
func (b *OpenAIBackend) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(b.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	})
	if err != nil {
		return "", fmt.Errorf("chat completions API: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completions API returned no choices")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
