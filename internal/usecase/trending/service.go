// Package trending serves suggested search prompts behind a freshness-windowed
// cache. It fails open: a refresh failure degrades to stale prompts or an
// empty list, never to an error.
package trending

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
	"github.com/biblespeak/versefinder/internal/metrics"
)

type Service struct {
	fetcher PromptFetcher
	cache   Cache
	window  time.Duration
	now     func() time.Time
	logger  *zap.Logger
}

func NewService(fetcher PromptFetcher, cache Cache, window time.Duration, logger *zap.Logger) *Service {
	return &Service{
		fetcher: fetcher,
		cache:   cache,
		window:  window,
		now:     time.Now,
		logger:  logger,
	}
}

// Prompts returns the trending prompts for the language. A cached entry
// fetched within the freshness window is served as is. Otherwise a refresh
// is attempted; on success the cache is replaced, on failure or an empty
// fetch the stale entry keeps being served if one exists.
func (s *Service) Prompts(ctx context.Context, lang domain.Language) []string {
	entry, ok := s.cache.Load(ctx, lang)
	if ok && entry.Fresh(s.now(), s.window) {
		metrics.TrendingCacheTotal.WithLabelValues("hit").Inc()
		return entry.Prompts
	}
	metrics.TrendingCacheTotal.WithLabelValues("miss").Inc()

	prompts, err := s.fetcher.TrendingPrompts(ctx, lang)
	if err != nil || len(prompts) == 0 {
		if err != nil {
			s.logger.Warn("Trending refresh failed",
				zap.String("language", string(lang)),
				zap.Error(err),
			)
		}
		if ok {
			return entry.Prompts
		}
		return nil
	}

	s.cache.Save(ctx, lang, domain.NewTrendingEntry(prompts, s.now()))
	return prompts
}
