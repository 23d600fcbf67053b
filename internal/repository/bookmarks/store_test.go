package bookmarks

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/biblespeak/versefinder/internal/db"
	"github.com/biblespeak/versefinder/internal/domain"
)

type fakeStore struct {
	data map[string][]byte
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

func (f *fakeStore) Set(_ context.Context, key string, value []byte) error {
	f.data[key] = value
	return nil
}

func verse(reference string) domain.GroupedVerseResult {
	return domain.GroupedVerseResult{
		ID:        domain.DeriveID(reference),
		Reference: reference,
		Translations: []domain.VerseTranslation{
			{Version: "ESV", Text: "text"},
		},
	}
}

func TestToggle_RoundTrip(t *testing.T) {
	s := New(newFakeStore(), "test:", zap.NewNop())
	ctx := context.Background()

	v := verse("Ephesians 2:8")

	if !s.Toggle(ctx, domain.LangEN, v) {
		t.Error("first toggle should bookmark")
	}
	if got := s.List(ctx, domain.LangEN); len(got) != 1 || got[0].ID != v.ID {
		t.Fatalf("expected [%s], got %v", v.ID, got)
	}

	if s.Toggle(ctx, domain.LangEN, v) {
		t.Error("second toggle should remove the bookmark")
	}
	if got := s.List(ctx, domain.LangEN); len(got) != 0 {
		t.Fatalf("expected empty list after second toggle, got %v", got)
	}

	// Third toggle re-adds: two toggles round-trip to the original set.
	if !s.Toggle(ctx, domain.LangEN, v) {
		t.Error("third toggle should bookmark again")
	}
}

func TestToggle_MembershipByID(t *testing.T) {
	s := New(newFakeStore(), "test:", zap.NewNop())
	ctx := context.Background()

	v1 := verse("John 3:16")
	s.Toggle(ctx, domain.LangEN, v1)

	// Same id, different commentary: still the same bookmark.
	v2 := v1
	v2.Context = "different commentary"
	if s.Toggle(ctx, domain.LangEN, v2) {
		t.Error("toggle with same id should remove, not add")
	}
	if got := s.List(ctx, domain.LangEN); len(got) != 0 {
		t.Fatalf("expected empty list, got %v", got)
	}
}

func TestToggle_PreservesOtherEntries(t *testing.T) {
	s := New(newFakeStore(), "test:", zap.NewNop())
	ctx := context.Background()

	a := verse("John 3:16")
	b := verse("Romans 8:28")
	c := verse("Psalm 23:1")
	s.Toggle(ctx, domain.LangEN, a)
	s.Toggle(ctx, domain.LangEN, b)
	s.Toggle(ctx, domain.LangEN, c)

	s.Toggle(ctx, domain.LangEN, b)

	got := s.List(ctx, domain.LangEN)
	if len(got) != 2 || got[0].ID != a.ID || got[1].ID != c.ID {
		t.Fatalf("expected [%s %s], got %v", a.ID, c.ID, got)
	}
}

func TestLanguageScoping(t *testing.T) {
	s := New(newFakeStore(), "test:", zap.NewNop())
	ctx := context.Background()

	v := verse("John 3:16")
	s.Toggle(ctx, domain.LangEN, v)

	if got := s.List(ctx, domain.LangKO); len(got) != 0 {
		t.Errorf("ko list should be empty, got %v", got)
	}
}

func TestList_MalformedTreatedAsEmpty(t *testing.T) {
	fs := newFakeStore()
	fs.data["test:bookmarks_en"] = []byte("[{broken")
	s := New(fs, "test:", zap.NewNop())

	if got := s.List(context.Background(), domain.LangEN); got != nil {
		t.Errorf("expected empty list for malformed data, got %v", got)
	}
}
