package news

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/cache"
	"github.com/oddlabs/oddly/internal/storage"
)

type fakeProvider struct {
	mu           sync.Mutex
	fetchCalls   int
	refreshCalls int
	articles     []article.Article
	err          error
	gate         chan struct{} // when set, Fetch blocks until closed
}

func (p *fakeProvider) FetchArticles(ctx context.Context, _ string) ([]article.Article, error) {
	p.mu.Lock()
	p.fetchCalls++
	gate := p.gate
	p.mu.Unlock()
	if gate != nil {
		<-gate
	}
	if p.err != nil {
		return nil, p.err
	}
	return p.articles, nil
}

func (p *fakeProvider) RefreshArticles(ctx context.Context) ([]article.Article, error) {
	p.mu.Lock()
	p.refreshCalls++
	p.mu.Unlock()
	if p.err != nil {
		return nil, p.err
	}
	return p.articles, nil
}

func (p *fakeProvider) calls() (fetch, refresh int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fetchCalls, p.refreshCalls
}

func networkArticles() []article.Article {
	return []article.Article{
		{ID: "net-1", Title: "Fresh Story", URL: "https://example.com/fresh", Category: "viral",
			PublishedAt: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)},
		{ID: "net-2", Title: "Another Fresh One", URL: "https://example.com/fresh2", Category: "animals",
			PublishedAt: time.Date(2026, 2, 9, 0, 0, 0, 0, time.UTC)},
	}
}

func cachedArticles() []article.Article {
	return []article.Article{
		{ID: "cached-1", Title: "Older Story", URL: "https://example.com/old", Category: "viral",
			PublishedAt: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
	}
}

func newTestService(t *testing.T, provider Provider, kv storage.KV) *Service {
	t.Helper()
	if kv == nil {
		kv = storage.NewMemory()
	}
	return NewService(Options{
		Provider: provider,
		Cache:    cache.NewArticleCache(kv, 30*time.Minute),
	})
}

func TestFetchFallsThroughToFallback(t *testing.T) {
	provider := &fakeProvider{err: errors.New("network down")}
	svc := newTestService(t, provider, nil)

	got := svc.FetchArticles(context.Background(), article.CategoryAll)
	if len(got) != len(article.Fallback()) {
		t.Fatalf("expected the fallback list, got %d articles", len(got))
	}
}

func TestFetchNetworkTierWarmsMemory(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	svc := newTestService(t, provider, nil)
	ctx := context.Background()

	first := svc.FetchArticles(ctx, article.CategoryAll)
	if len(first) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(first))
	}

	// Second call must come from memory: no further provider calls.
	svc.FetchArticles(ctx, article.CategoryAll)
	if fetch, _ := provider.calls(); fetch != 1 {
		t.Fatalf("provider called %d times, want 1", fetch)
	}

	// The fire-and-forget cache write lands after a drain.
	svc.Drain()
	if !svc.HasOfflineData(ctx) {
		t.Fatal("network fetch did not populate the persistent cache")
	}
}

func TestFetchCategoryFilterAtBoundary(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	svc := newTestService(t, provider, nil)

	got := svc.FetchArticles(context.Background(), "animals")
	if len(got) != 1 || got[0].ID != "net-2" {
		t.Fatalf("category filter wrong: %+v", got)
	}
}

func TestFetchDropsInvalidDates(t *testing.T) {
	arts := networkArticles()
	arts = append(arts, article.Article{ID: "undated", Title: "No Date", URL: "https://example.com/x", Category: "viral"})
	provider := &fakeProvider{articles: arts}
	svc := newTestService(t, provider, nil)

	got := svc.FetchArticles(context.Background(), article.CategoryAll)
	for _, a := range got {
		if a.ID == "undated" {
			t.Fatal("article with invalid date returned to caller")
		}
	}
}

// stalledKV simulates a hung store: Get blocks until the caller's
// context expires. Writes go through to the wrapped store.
type stalledKV struct {
	inner *storage.Memory
}

func (k *stalledKV) Get(ctx context.Context, _ string) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

func (k *stalledKV) Set(ctx context.Context, key, value string) error {
	return k.inner.Set(ctx, key, value)
}

func (k *stalledKV) Remove(ctx context.Context, key string) error {
	return k.inner.Remove(ctx, key)
}

func (k *stalledKV) Keys(ctx context.Context, prefix string) ([]string, error) {
	return k.inner.Keys(ctx, prefix)
}

func TestFetchBoundedByStalledStore(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	svc := NewService(Options{
		Provider: provider,
		Cache:    cache.NewArticleCache(&stalledKV{inner: storage.NewMemory()}, 30*time.Minute),
		ReadWait: 50 * time.Millisecond,
	})
	ctx := context.Background()

	// The hung read is abandoned at the bound and the provider serves.
	start := time.Now()
	got := svc.FetchArticles(ctx, article.CategoryAll)
	if elapsed := time.Since(start); elapsed > 2*time.Second {
		t.Fatalf("stalled store blocked the fetch for %v", elapsed)
	}
	if len(got) != 2 || got[0].ID != "net-1" {
		t.Fatalf("expected provider articles, got %+v", got)
	}

	// The abandoned read must never land in memory behind the fresh
	// set: the next call is served from memory, no second fetch.
	svc.Drain()
	after := svc.FetchArticles(ctx, article.CategoryAll)
	if len(after) != 2 || after[0].ID != "net-1" {
		t.Fatalf("memory lost the provider result: %+v", after)
	}
	if fetch, _ := provider.calls(); fetch != 1 {
		t.Fatalf("provider called %d times, want 1", fetch)
	}
}

func TestStaleWhileRevalidate(t *testing.T) {
	ctx := context.Background()
	kv := storage.NewMemory()

	// Seed the persistent cache.
	seed := cache.NewArticleCache(kv, 30*time.Minute)
	seed.Set(ctx, cachedArticles())

	gate := make(chan struct{})
	provider := &fakeProvider{articles: networkArticles(), gate: gate}
	svc := newTestService(t, provider, kv)

	// The call returns cached data without waiting for the network.
	got := svc.FetchArticles(ctx, article.CategoryAll)
	if len(got) != 1 || got[0].ID != "cached-1" {
		t.Fatalf("expected cached articles, got %+v", got)
	}

	// Release the background refresh and wait for it.
	close(gate)
	svc.Drain()

	// Memory now holds the fresh set.
	after := svc.FetchArticles(ctx, article.CategoryAll)
	if len(after) != 2 || after[0].ID != "net-1" {
		t.Fatalf("background refresh did not update memory: %+v", after)
	}
	if fetch, _ := provider.calls(); fetch != 1 {
		t.Fatalf("provider called %d times, want 1 background refresh", fetch)
	}
}

func TestRefreshFailureServesMemory(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	svc := newTestService(t, provider, nil)
	ctx := context.Background()

	svc.FetchArticles(ctx, article.CategoryAll) // warm memory

	provider.err = errors.New("refresh failed")
	got := svc.Refresh(ctx)
	if len(got) != 2 || got[0].ID != "net-1" {
		t.Fatalf("refresh failure should serve memory cache, got %+v", got)
	}
}

func TestRefreshFailureColdFallsBack(t *testing.T) {
	provider := &fakeProvider{err: errors.New("down")}
	svc := newTestService(t, provider, nil)

	got := svc.Refresh(context.Background())
	if len(got) != len(article.Fallback()) {
		t.Fatalf("expected fallback, got %d articles", len(got))
	}
}

func TestRefreshUpdatesCaches(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	kv := storage.NewMemory()
	svc := newTestService(t, provider, kv)
	ctx := context.Background()

	got := svc.Refresh(ctx)
	if len(got) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(got))
	}
	if _, refresh := provider.calls(); refresh != 1 {
		t.Fatalf("refresh calls = %d, want 1", refresh)
	}
	if !svc.HasOfflineData(ctx) {
		t.Fatal("refresh did not persist articles")
	}
}

func TestArticleByID(t *testing.T) {
	provider := &fakeProvider{articles: networkArticles()}
	svc := newTestService(t, provider, nil)
	ctx := context.Background()

	// Cold: resolves against the fallback list.
	fb := article.Fallback()
	if _, ok := svc.ArticleByID(fb[0].ID); !ok {
		t.Fatal("fallback article not found before first fetch")
	}

	svc.FetchArticles(ctx, article.CategoryAll)
	if a, ok := svc.ArticleByID("net-1"); !ok || a.Title != "Fresh Story" {
		t.Fatalf("memory article not found: %+v ok=%v", a, ok)
	}
	if _, ok := svc.ArticleByID("nope"); ok {
		t.Fatal("unknown id resolved")
	}
}
