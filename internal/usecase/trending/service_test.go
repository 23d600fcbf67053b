package trending

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/domain"
)

type fakeFetcher struct {
	prompts []string
	err     error
	calls   int
}

func (f *fakeFetcher) TrendingPrompts(context.Context, domain.Language) ([]string, error) {
	f.calls++
	return f.prompts, f.err
}

type fakeCache struct {
	entries map[domain.Language]domain.TrendingEntry
	saves   int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: make(map[domain.Language]domain.TrendingEntry)}
}

func (c *fakeCache) Load(_ context.Context, lang domain.Language) (domain.TrendingEntry, bool) {
	e, ok := c.entries[lang]
	return e, ok
}

func (c *fakeCache) Save(_ context.Context, lang domain.Language, entry domain.TrendingEntry) {
	c.entries[lang] = entry
	c.saves++
}

func newTestService(fetcher *fakeFetcher, cache *fakeCache, now time.Time) *Service {
	s := NewService(fetcher, cache, 24*time.Hour, zap.NewNop())
	s.now = func() time.Time { return now }
	return s
}

func TestPrompts_FreshCacheSkipsFetch(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{prompts: []string{"new"}}
	cache := newFakeCache()
	cache.entries[domain.LangEN] = domain.NewTrendingEntry([]string{"cached"}, now.Add(-time.Hour))

	got := newTestService(fetcher, cache, now).Prompts(context.Background(), domain.LangEN)

	if len(got) != 1 || got[0] != "cached" {
		t.Errorf("expected cached prompts, got %v", got)
	}
	if fetcher.calls != 0 {
		t.Errorf("fresh cache must not trigger a fetch, got %d calls", fetcher.calls)
	}
}

func TestPrompts_StaleCacheRefreshes(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{prompts: []string{"hope in trials", "forgiveness"}}
	cache := newFakeCache()
	cache.entries[domain.LangEN] = domain.NewTrendingEntry([]string{"old"}, now.Add(-25*time.Hour))

	got := newTestService(fetcher, cache, now).Prompts(context.Background(), domain.LangEN)

	if len(got) != 2 || got[0] != "hope in trials" {
		t.Errorf("expected refreshed prompts, got %v", got)
	}
	if cache.saves != 1 {
		t.Errorf("expected refreshed entry saved, got %d saves", cache.saves)
	}
	if saved := cache.entries[domain.LangEN]; saved.FetchedAt != now.UnixMilli() {
		t.Errorf("saved entry must carry the fetch time, got %d", saved.FetchedAt)
	}
}

func TestPrompts_EmptyCacheFetches(t *testing.T) {
	fetcher := &fakeFetcher{prompts: []string{"grace"}}
	cache := newFakeCache()

	got := newTestService(fetcher, cache, time.Now()).Prompts(context.Background(), domain.LangEN)

	if len(got) != 1 || got[0] != "grace" {
		t.Errorf("expected fetched prompts, got %v", got)
	}
}

func TestPrompts_FailedRefreshServesStale(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{err: domain.ErrVerseService}
	cache := newFakeCache()
	stale := domain.NewTrendingEntry([]string{"old"}, now.Add(-48*time.Hour))
	cache.entries[domain.LangEN] = stale

	got := newTestService(fetcher, cache, now).Prompts(context.Background(), domain.LangEN)

	if len(got) != 1 || got[0] != "old" {
		t.Errorf("expected stale prompts on failure, got %v", got)
	}
	if cache.saves != 0 {
		t.Error("failed refresh must leave the cache untouched")
	}
}

func TestPrompts_FailedRefreshWithoutCacheIsEmpty(t *testing.T) {
	fetcher := &fakeFetcher{err: domain.ErrVerseService}

	got := newTestService(fetcher, newFakeCache(), time.Now()).Prompts(context.Background(), domain.LangEN)

	if len(got) != 0 {
		t.Errorf("expected empty prompts, got %v", got)
	}
}

func TestPrompts_EmptyFetchDoesNotOverwrite(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{prompts: nil}
	cache := newFakeCache()
	cache.entries[domain.LangEN] = domain.NewTrendingEntry([]string{"old"}, now.Add(-48*time.Hour))

	got := newTestService(fetcher, cache, now).Prompts(context.Background(), domain.LangEN)

	if len(got) != 1 || got[0] != "old" {
		t.Errorf("expected stale prompts on empty fetch, got %v", got)
	}
	if cache.saves != 0 {
		t.Error("empty fetch must not be cached")
	}
}

func TestPrompts_LanguagesAreIndependent(t *testing.T) {
	now := time.Now()
	fetcher := &fakeFetcher{prompts: []string{"은혜"}}
	cache := newFakeCache()
	cache.entries[domain.LangEN] = domain.NewTrendingEntry([]string{"grace"}, now.Add(-time.Hour))

	got := newTestService(fetcher, cache, now).Prompts(context.Background(), domain.LangKO)

	if len(got) != 1 || got[0] != "은혜" {
		t.Errorf("expected Korean fetch, got %v", got)
	}
	if en := cache.entries[domain.LangEN]; en.Prompts[0] != "grace" {
		t.Errorf("English entry must be untouched, got %v", en.Prompts)
	}
}
