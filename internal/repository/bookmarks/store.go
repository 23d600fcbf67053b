// Package bookmarks persists the per-language bookmarked verse list.
package bookmarks

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/db"
	"github.com/biblespeak/versefinder/internal/domain"
)

// store is the consumer interface for bookmark persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store keeps one ordered bookmark list per language. Membership is by
// result id. Reads treat absent or malformed data as an empty list; writes
// are best-effort and failures surface only as log entries.
type Store struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a bookmark store. prefix is the shared storage key prefix.
func New(s store, prefix string, logger *zap.Logger) *Store {
	return &Store{store: s, prefix: prefix, logger: logger}
}

func (s *Store) key(lang domain.Language) string {
	return s.prefix + "bookmarks_" + string(lang)
}

// List returns the bookmarked results for a language in insertion order.
func (s *Store) List(ctx context.Context, lang domain.Language) []domain.GroupedVerseResult {
	key := s.key(lang)

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to load bookmarks", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var list []domain.GroupedVerseResult
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("Malformed bookmarks, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

// Toggle adds the result when its id is absent and removes it when present.
// Returns true when the result is bookmarked after the call.
func (s *Store) Toggle(ctx context.Context, lang domain.Language, result domain.GroupedVerseResult) bool {
	list := s.List(ctx, lang)

	kept := make([]domain.GroupedVerseResult, 0, len(list))
	removed := false
	for _, b := range list {
		if b.ID == result.ID {
			removed = true
			continue
		}
		kept = append(kept, b)
	}

	if !removed {
		kept = append(kept, result)
	}
	s.save(ctx, lang, kept)
	return !removed
}

func (s *Store) save(ctx context.Context, lang domain.Language, list []domain.GroupedVerseResult) {
	key := s.key(lang)

	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Warn("Failed to encode bookmarks", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		s.logger.Warn("Failed to persist bookmarks", zap.String("key", key), zap.Error(err))
	}
}
