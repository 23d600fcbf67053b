// Package trending persists the per-language trending prompt cache.
package trending

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/db"
	"github.com/biblespeak/versefinder/internal/domain"
)

// cacheVersion is bumped whenever the stored shape changes; entries written
// under an older version key are never read back.
const cacheVersion = "v2"

// store is the consumer interface for trending cache persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Store caches trending prompt entries per language under a versioned key.
type Store struct {
	store  store
	prefix string
	ttl    time.Duration
	logger *zap.Logger
}

// New creates a trending cache store. ttl bounds how long an entry may
// linger in the backend; freshness within that window is the caller's
// policy, so ttl should comfortably exceed the freshness window.
func New(s store, prefix string, ttl time.Duration, logger *zap.Logger) *Store {
	return &Store{store: s, prefix: prefix, ttl: ttl, logger: logger}
}

func (s *Store) key(lang domain.Language) string {
	return s.prefix + "trending_" + cacheVersion + "_" + string(lang)
}

// Load returns the cached entry for a language. Absent or malformed
// entries report ok=false.
func (s *Store) Load(ctx context.Context, lang domain.Language) (domain.TrendingEntry, bool) {
	key := s.key(lang)

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to load trending cache", zap.String("key", key), zap.Error(err))
		}
		return domain.TrendingEntry{}, false
	}

	var entry domain.TrendingEntry
	if err := json.Unmarshal(data, &entry); err != nil {
		s.logger.Warn("Malformed trending cache entry, treating as absent",
			zap.String("key", key), zap.Error(err))
		return domain.TrendingEntry{}, false
	}
	return entry, true
}

// Save overwrites the cached entry for a language. Best-effort.
func (s *Store) Save(ctx context.Context, lang domain.Language, entry domain.TrendingEntry) {
	key := s.key(lang)

	data, err := json.Marshal(entry)
	if err != nil {
		s.logger.Warn("Failed to encode trending cache entry", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.SetWithTTL(ctx, key, data, s.ttl); err != nil {
		s.logger.Warn("Failed to persist trending cache entry", zap.String("key", key), zap.Error(err))
	}
}
