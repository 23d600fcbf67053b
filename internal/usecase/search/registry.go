package search

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
)

// Registry hands out one Orchestrator per session id and evicts sessions
// that have been idle past the TTL.
type Registry struct {
	finder  VerseFinder
	topics  TopicStore
	timeout time.Duration
	idleTTL time.Duration
	logger  *zap.Logger

	mu       sync.Mutex
	sessions map[string]*Orchestrator
}

func NewRegistry(
	finder VerseFinder, topics TopicStore,
	timeout, idleTTL time.Duration, logger *zap.Logger,
) *Registry {
	return &Registry{
		finder:   finder,
		topics:   topics,
		timeout:  timeout,
		idleTTL:  idleTTL,
		logger:   logger,
		sessions: make(map[string]*Orchestrator),
	}
}

// Get returns the orchestrator for the session, creating it on first use.
// New sessions start in English.
func (r *Registry) Get(id string) *Orchestrator {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.sessions[id]
	if !ok {
		o = NewOrchestrator(r.finder, r.topics, domain.LangEN, r.timeout, r.logger)
		r.sessions[id] = o
		r.logger.Debug("Session created", zap.String("session_id", id))
	}
	return o
}

// Sweep drops sessions idle past the TTL and reports how many were evicted.
func (r *Registry) Sweep(now time.Time) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for id, o := range r.sessions {
		if now.Sub(o.LastActive()) > r.idleTTL {
			delete(r.sessions, id)
			evicted++
		}
	}
	return evicted
}

// Run sweeps periodically until the context is done.
func (r *Registry) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if n := r.Sweep(now); n > 0 {
				r.logger.Debug("Idle sessions evicted", zap.Int("count", n))
			}
		}
	}
}
