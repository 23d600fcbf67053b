// Package topics persists the per-language saved topic list.
package topics

import (
	"context"
	"encoding/json"
	"errors"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/db"
	"github.com/biblespeak/versefinder/internal/domain"
)

// store is the consumer interface for topic persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Store keeps one insertion-ordered, duplicate-free topic list per language.
// Reads treat absent or malformed data as an empty list; writes are
// best-effort and failures surface only as log entries.
type Store struct {
	store  store
	prefix string
	logger *zap.Logger
}

// New creates a topic store. prefix is the shared storage key prefix.
func New(s store, prefix string, logger *zap.Logger) *Store {
	return &Store{store: s, prefix: prefix, logger: logger}
}

func (s *Store) key(lang domain.Language) string {
	return s.prefix + "topics_" + string(lang)
}

// List returns the saved topics for a language, oldest first.
func (s *Store) List(ctx context.Context, lang domain.Language) []string {
	key := s.key(lang)

	data, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			s.logger.Warn("Failed to load saved topics", zap.String("key", key), zap.Error(err))
		}
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		s.logger.Warn("Malformed saved topics, treating as empty", zap.String("key", key), zap.Error(err))
		return nil
	}
	return list
}

// Add appends a topic if not already present. Returns true when the list changed.
func (s *Store) Add(ctx context.Context, lang domain.Language, topic string) bool {
	list := s.List(ctx, lang)
	for _, t := range list {
		if t == topic {
			return false
		}
	}
	s.save(ctx, lang, append(list, topic))
	return true
}

// Remove deletes a topic. Removing an absent topic is a no-op.
func (s *Store) Remove(ctx context.Context, lang domain.Language, topic string) {
	list := s.List(ctx, lang)
	kept := list[:0]
	for _, t := range list {
		if t != topic {
			kept = append(kept, t)
		}
	}
	if len(kept) == len(list) {
		return
	}
	s.save(ctx, lang, kept)
}

func (s *Store) save(ctx context.Context, lang domain.Language, list []string) {
	key := s.key(lang)

	data, err := json.Marshal(list)
	if err != nil {
		s.logger.Warn("Failed to encode saved topics", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		s.logger.Warn("Failed to persist saved topics", zap.String("key", key), zap.Error(err))
	}
}
