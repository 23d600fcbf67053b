package trending

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/db"
	"github.com/biblespeak/versefinder/internal/domain"
)

type fakeStore struct {
	data    map[string][]byte
	lastTTL time.Duration
}

func newFakeStore() *fakeStore {
	return &fakeStore{data: map[string][]byte{}}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return v, nil
}

func (f *fakeStore) SetWithTTL(_ context.Context, key string, value []byte, ttl time.Duration) error {
	f.data[key] = value
	f.lastTTL = ttl
	return nil
}

func TestSaveLoad(t *testing.T) {
	fs := newFakeStore()
	s := New(fs, "test:", 48*time.Hour, zap.NewNop())
	ctx := context.Background()

	entry := domain.NewTrendingEntry([]string{"grace", "hope", "love"}, time.Now())
	s.Save(ctx, domain.LangEN, entry)

	if fs.lastTTL != 48*time.Hour {
		t.Errorf("expected 48h backend TTL, got %v", fs.lastTTL)
	}

	got, ok := s.Load(ctx, domain.LangEN)
	if !ok {
		t.Fatal("expected entry to load")
	}
	if len(got.Prompts) != 3 || got.Prompts[0] != "grace" {
		t.Errorf("unexpected prompts: %v", got.Prompts)
	}
	if got.FetchedAt != entry.FetchedAt {
		t.Errorf("timestamp changed across round trip: %d vs %d", got.FetchedAt, entry.FetchedAt)
	}
}

func TestLoad_Absent(t *testing.T) {
	s := New(newFakeStore(), "test:", 48*time.Hour, zap.NewNop())

	if _, ok := s.Load(context.Background(), domain.LangEN); ok {
		t.Error("expected ok=false for absent entry")
	}
}

func TestLoad_Malformed(t *testing.T) {
	fs := newFakeStore()
	fs.data["test:trending_v2_en"] = []byte("not json at all")
	s := New(fs, "test:", 48*time.Hour, zap.NewNop())

	if _, ok := s.Load(context.Background(), domain.LangEN); ok {
		t.Error("expected ok=false for malformed entry")
	}
}

func TestVersionedKey_IgnoresOldShapes(t *testing.T) {
	fs := newFakeStore()
	// An entry written under a historical key version must never be read.
	fs.data["test:trending_en"] = []byte(`{"prompts":["old"],"timestamp":1}`)
	fs.data["test:trending_v1_en"] = []byte(`{"prompts":["old"],"timestamp":1}`)
	s := New(fs, "test:", 48*time.Hour, zap.NewNop())

	if _, ok := s.Load(context.Background(), domain.LangEN); ok {
		t.Error("differently-versioned cache entries must be treated as absent")
	}
}

func TestLanguageScoping(t *testing.T) {
	s := New(newFakeStore(), "test:", 48*time.Hour, zap.NewNop())
	ctx := context.Background()

	s.Save(ctx, domain.LangKO, domain.NewTrendingEntry([]string{"은혜"}, time.Now()))

	if _, ok := s.Load(ctx, domain.LangEN); ok {
		t.Error("en entry should be absent")
	}
	if got, ok := s.Load(ctx, domain.LangKO); !ok || got.Prompts[0] != "은혜" {
		t.Errorf("ko entry = %v ok=%v", got, ok)
	}
}
