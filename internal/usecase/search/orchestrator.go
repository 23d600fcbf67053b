// Package search owns the lifecycle of "the current search" for one client
// session: issuing tagged requests, discarding superseded outcomes, and the
// cancel and language-replay rules.
package search

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
	"github.com/biblespeak/versefinder/internal/metrics"
)

// Snapshot is the user-visible search state at a point in time.
type Snapshot struct {
	Query    string
	Language domain.Language
	Results  []domain.GroupedVerseResult
	Loading  bool
	ErrMsg   string
}

// Orchestrator serializes overlapping searches for one session. Every issued
// search captures the generation counter; a completion may touch visible
// state only while its captured value is still current. Cancellation bumps
// the counter without issuing anything, so an in-flight response can never
// resurrect itself.
type Orchestrator struct {
	finder  VerseFinder
	topics  TopicStore
	timeout time.Duration
	logger  *zap.Logger

	mu         sync.Mutex
	generation uint64
	cancelled  bool
	query      string
	language   domain.Language
	results    []domain.GroupedVerseResult
	loading    bool
	errMsg     string
	lastActive time.Time
}

// NewOrchestrator creates a session orchestrator. timeout bounds each
// verse-search call.
func NewOrchestrator(
	finder VerseFinder, topics TopicStore, lang domain.Language,
	timeout time.Duration, logger *zap.Logger,
) *Orchestrator {
	return &Orchestrator{
		finder:     finder,
		topics:     topics,
		language:   lang,
		timeout:    timeout,
		logger:     logger,
		lastActive: time.Now(),
	}
}

// StartSearch issues a new search. A blank query is rejected before anything
// is issued and leaves all visible state untouched.
func (o *Orchestrator) StartSearch(query string, lang domain.Language) error {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return domain.ErrEmptyQuery
	}
	if !lang.Valid() {
		return domain.ErrUnknownLanguage
	}

	o.mu.Lock()
	o.query = trimmed
	o.language = lang
	o.results = nil
	o.errMsg = ""
	o.loading = true
	o.cancelled = false
	o.generation++
	gen := o.generation
	o.lastActive = time.Now()
	o.mu.Unlock()

	go o.run(gen, trimmed, lang)
	return nil
}

// Cancel invalidates any in-flight search. Logical only: the request may
// still complete on the wire, but its outcome is discarded. Idempotent.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.generation++
	o.cancelled = true
	o.loading = false
	o.errMsg = ""
	o.lastActive = time.Now()
}

// SetLanguage switches the session language. If a query exists and the last
// search was not explicitly cancelled, the same query is replayed under the
// new language with a fresh generation. Returns whether a replay was issued.
func (o *Orchestrator) SetLanguage(lang domain.Language) (bool, error) {
	if !lang.Valid() {
		return false, domain.ErrUnknownLanguage
	}

	o.mu.Lock()
	if o.language == lang {
		o.lastActive = time.Now()
		o.mu.Unlock()
		return false, nil
	}
	o.language = lang
	query := o.query
	cancelled := o.cancelled
	o.lastActive = time.Now()
	o.mu.Unlock()

	if query == "" || cancelled {
		return false, nil
	}
	return true, o.StartSearch(query, lang)
}

// Snapshot returns a copy of the visible state.
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	results := make([]domain.GroupedVerseResult, len(o.results))
	copy(results, o.results)
	return Snapshot{
		Query:    o.query,
		Language: o.language,
		Results:  results,
		Loading:  o.loading,
		ErrMsg:   o.errMsg,
	}
}

// LastActive reports the last state-changing call, for idle eviction.
func (o *Orchestrator) LastActive() time.Time {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastActive
}

// run performs the verse-search call and resolves its outcome against the
// current generation.
func (o *Orchestrator) run(gen uint64, query string, lang domain.Language) {
	ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
	defer cancel()

	start := time.Now()
	results, err := o.finder.FindVerses(ctx, query, lang)
	elapsed := time.Since(start)

	o.mu.Lock()
	defer o.mu.Unlock()

	if gen != o.generation {
		// Superseded by a newer search or a cancel. Expected outcome,
		// not a failure: no state mutation, no persistence write.
		metrics.SearchesTotal.WithLabelValues(string(lang), metrics.OutcomeDiscarded).Inc()
		o.logger.Debug("Stale search outcome discarded",
			zap.Uint64("generation", gen),
			zap.Uint64("current", o.generation),
			zap.String("query", query),
		)
		return
	}

	o.loading = false
	metrics.SearchDuration.WithLabelValues(string(lang)).Observe(elapsed.Seconds())

	if err != nil {
		metrics.SearchesTotal.WithLabelValues(string(lang), metrics.OutcomeFailed).Inc()
		o.errMsg = domain.SearchFallbackMessage(lang)
		o.logger.Warn("Verse search failed",
			zap.String("query", query),
			zap.String("language", string(lang)),
			zap.Error(err),
		)
		return
	}

	o.results = results
	metrics.SearchesTotal.WithLabelValues(string(lang), metrics.OutcomeCommitted).Inc()

	if o.topics.Add(ctx, lang, query) {
		o.logger.Debug("Saved topic", zap.String("topic", query), zap.String("language", string(lang)))
	}
}
