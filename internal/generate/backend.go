// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package generate

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/pdiddy/scriptgen/pkg/types"
)

const (
	DefaultModel       = "claude-3-5-sonnet-latest"
	DefaultMaxTokens   = 2000
	DefaultTemperature = 0.7
	DefaultTimeout     = 120 * time.Second
)

// Backend abstracts the text-generation API so tests can supply a fake.
// Complete sends one system message and one user prompt and returns the
// text of the completion.
type Backend interface {
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// WithDefaults fills zero-valued fields of cfg with package defaults.
// Temperature is left alone since zero is a valid setting; callers supply
// DefaultTemperature when nothing is configured.
func WithDefaults(cfg types.AIConfig) types.AIConfig {
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return cfg
}

// ClaudeBackend calls the Anthropic Messages API through the official SDK.
// SDK-level retries are disabled; a failed call fails once.
type ClaudeBackend struct {
	client      *anthropic.Client
	model       string
	maxTokens   int64
	temperature float64
}

// NewClaudeBackend builds a backend from cfg. The API key is taken only from
// cfg.
func NewClaudeBackend(cfg types.AIConfig) *ClaudeBackend {
	cfg = WithDefaults(cfg)

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &ClaudeBackend{
		client:      anthropic.NewClient(opts...),
		model:       cfg.Model,
		maxTokens:   int64(cfg.MaxTokens),
		temperature: cfg.Temperature,
	}
}

// Complete sends the prompt and returns the concatenated text blocks of the
// reply.
func (c *ClaudeBackend) Complete(ctx context.Context, system, prompt string) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.F(anthropic.Model(c.model)),
		MaxTokens:   anthropic.F(c.maxTokens),
		Temperature: anthropic.F(c.temperature),
		System: anthropic.F([]anthropic.TextBlockParam{
			anthropic.NewTextBlock(system),
		}),
		Messages: anthropic.F([]anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		}),
	})
	if err != nil {
		return "", fmt.Errorf("calling Claude API: %w", err)
	}

	var parts []string
	for _, block := range msg.Content {
		if string(block.Type) != "text" {
			continue
		}
		parts = append(parts, block.Text)
	}
	if len(parts) == 0 {
		return "", fmt.Errorf("no text content in Claude API response")
	}
	return strings.Join(parts, ""), nil
}
