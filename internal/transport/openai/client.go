// Package openai talks to the OpenAI-compatible generation service behind
// both external collaborators: verse search and trending prompt suggestions.
package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
	"github.com/biblespeak/versefinder/internal/metrics"
)

// Client issues structured-generation requests against an OpenAI-compatible API.
type Client struct {
	client      *openai.Client
	model       string
	versions    map[domain.Language][]string
	promptCount int
	logger      *zap.Logger
}

// Config holds the generation provider settings.
type Config struct {
	APIKey      string
	BaseURL     string
	Model       string
	Versions    map[string][]string
	PromptCount int
	Logger      *zap.Logger
}

// NewClient creates a generation client.
func NewClient(cfg *Config) *Client {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}

	versions := make(map[domain.Language][]string, len(cfg.Versions))
	for lang, vs := range cfg.Versions {
		versions[domain.Language(lang)] = vs
	}

	promptCount := cfg.PromptCount
	if promptCount <= 0 {
		promptCount = 3
	}

	return &Client{
		client:      openai.NewClientWithConfig(clientCfg),
		model:       cfg.Model,
		versions:    versions,
		promptCount: promptCount,
		logger:      cfg.Logger,
	}
}

// HealthCheck verifies API availability via ListModels (free endpoint).
func (c *Client) HealthCheck(ctx context.Context) error {
	if _, err := c.client.ListModels(ctx); err != nil {
		return fmt.Errorf("list models: %w", err)
	}
	return nil
}

// generate runs one JSON-mode chat completion and returns the raw content.
// kind labels metrics ("verses" / "trending").
func (c *Client) generate(ctx context.Context, kind, system, user string) (string, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		metrics.LLMRequestsTotal.WithLabelValues(c.model, kind, "error").Inc()
		return "", classifyAPIError(err)
	}

	metrics.LLMRequestsTotal.WithLabelValues(c.model, kind, "success").Inc()
	if resp.Usage.TotalTokens > 0 {
		metrics.LLMTokensTotal.WithLabelValues(c.model, "prompt").Add(float64(resp.Usage.PromptTokens))
		metrics.LLMTokensTotal.WithLabelValues(c.model, "completion").Add(float64(resp.Usage.CompletionTokens))
		metrics.LLMTokensTotal.WithLabelValues(c.model, "total").Add(float64(resp.Usage.TotalTokens))
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("empty completion response: %w", domain.ErrVerseService)
	}
	return resp.Choices[0].Message.Content, nil
}

// classifyAPIError wraps any transport or API failure with
// domain.ErrVerseService so the orchestrator sees a single failure class.
func classifyAPIError(err error) error {
	wrap := domain.ErrVerseService

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			reqErr.HTTPStatusCode, string(reqErr.Body), wrap)
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("generation API error %d: %s: %w",
			apiErr.HTTPStatusCode, apiErr.Message, wrap)
	}

	return fmt.Errorf("generation request failed: %w", wrap)
}

// stripCodeFences removes a markdown ```json fence the model sometimes
// wraps around its output despite JSON mode.
func stripCodeFences(content string) string {
	content = strings.TrimSpace(content)
	if !strings.HasPrefix(content, "```") {
		return content
	}
	content = strings.TrimPrefix(content, "```json")
	content = strings.TrimPrefix(content, "```")
	content = strings.TrimSuffix(strings.TrimSpace(content), "```")
	return strings.TrimSpace(content)
}

// decodeArray decodes content that is either a bare JSON array or an object
// wrapping the array under the given field name.
func decodeArray(content, field string, out any) error {
	content = stripCodeFences(content)

	if strings.HasPrefix(content, "[") {
		if err := json.Unmarshal([]byte(content), out); err != nil {
			return fmt.Errorf("decode array: %w", err)
		}
		return nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &envelope); err != nil {
		return fmt.Errorf("decode envelope: %w", err)
	}
	raw, ok := envelope[field]
	if !ok {
		return fmt.Errorf("envelope has no %q field", field)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %q: %w", field, err)
	}
	return nil
}
