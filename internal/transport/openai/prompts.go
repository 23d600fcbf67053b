package openai

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
)

const trendingSystemPrompt = `You suggest short search topics for a Bible verse research tool.
Suggest concise, spiritually substantive topics a reader might search for, such as themes of
comfort, guidance, or doctrine. Write them in the requested language. Respond with JSON only:
an object {"prompts": ["...", ...]}.`

// TrendingPrompts fetches a small set of suggested search queries for the
// language. Callers must tolerate any length; failures propagate so the
// caching layer can decide what to serve.
func (c *Client) TrendingPrompts(ctx context.Context, lang domain.Language) ([]string, error) {
	user := fmt.Sprintf("Language: %q\nNumber of suggestions: %d", lang, c.promptCount)

	content, err := c.generate(ctx, "trending", trendingSystemPrompt, user)
	if err != nil {
		return nil, err
	}

	var prompts []string
	if err := decodeArray(content, "prompts", &prompts); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrMalformedResult, err)
	}

	out := prompts[:0]
	for _, p := range prompts {
		if p != "" {
			out = append(out, p)
		}
	}

	c.logger.Debug("Trending prompts fetched",
		zap.String("language", string(lang)),
		zap.Int("count", len(out)),
	)
	return out, nil
}
