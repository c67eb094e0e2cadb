package record

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/starford/laguz/internal/models"
)

// fakeSource counts fetches and serves records from a fixed map keyed by
// the exact requested name.
type fakeSource struct {
	records      map[string]*models.Record
	aliases      map[string]*models.Record
	fetchErr     error
	aliasErr     error
	fetchCalls   int
	aliasCalls   int
	blocksCalls  int
	blocksResult []models.Block
}

func (f *fakeSource) FetchRecord(_ context.Context, name string) (*models.Record, error) {
	f.fetchCalls++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return f.records[name], nil
}

func (f *fakeSource) FetchBlocks(_ context.Context, _ string) ([]models.Block, error) {
	f.blocksCalls++
	return f.blocksResult, nil
}

func (f *fakeSource) ResolveAlias(_ context.Context, name string) (*models.Record, error) {
	f.aliasCalls++
	if f.aliasErr != nil {
		return nil, f.aliasErr
	}
	return f.aliases[name], nil
}

func TestGet_CachesWithinTTL(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{
		"Test Page": {Name: "Test Page", Properties: map[string]any{"type": "Note"}},
	}}
	now := time.Now()
	s := NewStore(src, WithNowFunc(func() time.Time { return now }))

	rec := s.Get(context.Background(), "Test Page", GetOptions{})
	if rec == nil || rec.Name != "Test Page" {
		t.Fatalf("rec = %+v", rec)
	}
	for i := 0; i < 5; i++ {
		s.Get(context.Background(), "Test Page", GetOptions{})
	}
	if src.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, want 1 within the TTL window", src.fetchCalls)
	}

	now = now.Add(DefaultTTL + time.Second)
	s.Get(context.Background(), "Test Page", GetOptions{})
	if src.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2 after expiry", src.fetchCalls)
	}
}

func TestGet_CaseInsensitiveKey(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{
		"Test Page": {Name: "Test Page", Properties: map[string]any{"type": "Note"}},
	}}
	s := NewStore(src)

	s.Get(context.Background(), "Test Page", GetOptions{})
	s.Get(context.Background(), "test page", GetOptions{})
	s.Get(context.Background(), "TEST PAGE", GetOptions{})

	if src.fetchCalls != 1 {
		t.Errorf("fetchCalls = %d, case variants should hit one cache entry", src.fetchCalls)
	}
	if s.CacheLen() != 1 {
		t.Errorf("CacheLen = %d, want 1", s.CacheLen())
	}
}

func TestGet_SkipCache(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{
		"p": {Name: "p", Properties: map[string]any{"type": "Note"}},
	}}
	s := NewStore(src)

	s.Get(context.Background(), "p", GetOptions{})
	s.Get(context.Background(), "p", GetOptions{SkipCache: true})
	if src.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2 with SkipCache", src.fetchCalls)
	}
}

func TestGet_ErrorCollapsesToNil(t *testing.T) {
	src := &fakeSource{fetchErr: errors.New("boom")}
	s := NewStore(src)

	if rec := s.Get(context.Background(), "p", GetOptions{}); rec != nil {
		t.Errorf("rec = %+v, want nil on fetch error", rec)
	}
}

func TestGet_AbsenceNotMemoized(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{}}
	s := NewStore(src)

	s.Get(context.Background(), "later", GetOptions{})
	if s.CacheLen() != 0 {
		t.Fatalf("CacheLen = %d, absence must not be cached", s.CacheLen())
	}

	// The record appears; the next Get must see it.
	src.records["later"] = &models.Record{Name: "later", Properties: map[string]any{"type": "Note"}}
	rec := s.Get(context.Background(), "later", GetOptions{})
	if rec == nil {
		t.Error("expected record after it was created")
	}
	if src.fetchCalls != 2 {
		t.Errorf("fetchCalls = %d, want 2", src.fetchCalls)
	}
}

func TestGet_AliasStubResolved(t *testing.T) {
	canonical := &models.Record{
		Name:       "Kubernetes",
		Properties: map[string]any{"type": "Tool"},
	}
	src := &fakeSource{
		records: map[string]*models.Record{
			"k8s": {Name: "k8s", Properties: map[string]any{}},
		},
		aliases: map[string]*models.Record{"k8s": canonical},
	}
	s := NewStore(src)

	rec := s.Get(context.Background(), "k8s", GetOptions{})
	if rec == nil {
		t.Fatal("rec = nil")
	}
	if rec.Name != "Kubernetes" || rec.ResolvedName != "Kubernetes" {
		t.Errorf("rec = %+v, alias stub should resolve to canonical record", rec)
	}
	if src.aliasCalls != 1 {
		t.Errorf("aliasCalls = %d, want 1", src.aliasCalls)
	}
}

func TestGet_AliasResolutionFailureReturnsStub(t *testing.T) {
	stub := &models.Record{Name: "k8s", Properties: map[string]any{}}
	src := &fakeSource{
		records:  map[string]*models.Record{"k8s": stub},
		aliasErr: errors.New("db gone"),
	}
	s := NewStore(src)

	rec := s.Get(context.Background(), "k8s", GetOptions{})
	if rec == nil || rec.Name != "k8s" {
		t.Errorf("rec = %+v, want the stub back when resolution fails", rec)
	}
}

func TestGet_RecordWithPropertiesSkipsAliasLookup(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{
		"p": {Name: "p", Properties: map[string]any{"type": "Note"}},
	}}
	s := NewStore(src)

	s.Get(context.Background(), "p", GetOptions{})
	if src.aliasCalls != 0 {
		t.Errorf("aliasCalls = %d, non-empty records should not trigger alias lookup", src.aliasCalls)
	}
}

func TestBlocks_NeverCached(t *testing.T) {
	src := &fakeSource{blocksResult: []models.Block{{Content: "hello"}}}
	s := NewStore(src)

	for i := 0; i < 3; i++ {
		blocks := s.Blocks(context.Background(), "p")
		if len(blocks) != 1 || blocks[0].Content != "hello" {
			t.Fatalf("blocks = %v", blocks)
		}
	}
	if src.blocksCalls != 3 {
		t.Errorf("blocksCalls = %d, want 3", src.blocksCalls)
	}
}

func TestClear(t *testing.T) {
	src := &fakeSource{records: map[string]*models.Record{
		"A": {Name: "A", Properties: map[string]any{"type": "Note"}},
		"B": {Name: "B", Properties: map[string]any{"type": "Note"}},
	}}
	s := NewStore(src)

	s.Get(context.Background(), "A", GetOptions{})
	s.Get(context.Background(), "B", GetOptions{})

	s.Clear("a")
	if s.CacheLen() != 1 {
		t.Errorf("CacheLen = %d after Clear, want 1", s.CacheLen())
	}

	s.ClearAll()
	if s.CacheLen() != 0 {
		t.Errorf("CacheLen = %d after ClearAll, want 0", s.CacheLen())
	}
}
