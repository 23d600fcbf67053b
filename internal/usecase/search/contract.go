package search

import (
	"context"

	"github.com/biblespeak/versefinder/internal/domain"
)

// VerseFinder runs a single verse search against the generation service.
type VerseFinder interface {
	FindVerses(ctx context.Context, query string, lang domain.Language) ([]domain.GroupedVerseResult, error)
}

// TopicStore persists successful queries per language. Add reports whether
// the list changed; writes are best-effort.
type TopicStore interface {
	Add(ctx context.Context, lang domain.Language, topic string) bool
}
