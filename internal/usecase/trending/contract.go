package trending

import (
	"context"

	"github.com/biblespeak/versefinder/internal/domain"
)

// PromptFetcher produces fresh suggested search prompts for a language.
type PromptFetcher interface {
	TrendingPrompts(ctx context.Context, lang domain.Language) ([]string, error)
}

// Cache loads and stores the per-language trending entry. Load reports
// whether a usable entry exists; Save is best-effort.
type Cache interface {
	Load(ctx context.Context, lang domain.Language) (domain.TrendingEntry, bool)
	Save(ctx context.Context, lang domain.Language, entry domain.TrendingEntry)
}
