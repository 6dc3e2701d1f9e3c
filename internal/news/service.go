// Package news composes the memory cache, persistent cache, remote
// provider, and static fallback into one resilient fetch surface.
package news

import (
	"context"
	"sync"
	"time"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/cache"
	"github.com/oddlabs/oddly/internal/logger"
	"github.com/oddlabs/oddly/internal/metrics"
)

// DefaultReadWait bounds the persistent cache read. Storage can stall
// on some platforms; a cold start must not block behind it.
const DefaultReadWait = 2 * time.Second

// Provider is a source of article lists: the remote API client or the
// direct RSS source.
type Provider interface {
	// FetchArticles returns articles for a category. The provider owns
	// its own request timeout.
	FetchArticles(ctx context.Context, category string) ([]article.Article, error)

	// RefreshArticles always goes to the origin, bypassing any
	// server-side cache.
	RefreshArticles(ctx context.Context) ([]article.Article, error)
}

// Service resolves every fetch through four tiers in strict order:
// process memory, persistent cache, provider, static fallback. Any
// tier failure means "this tier has nothing" and falls through; a
// fetch therefore never returns an error.
type Service struct {
	provider Provider
	cache    *cache.ArticleCache
	content  *cache.ContentCache
	fetcher  cache.ContentFetcher
	fallback []article.Article
	readWait time.Duration
	metrics  *metrics.Metrics
	log      *logger.Entry

	mu     sync.Mutex
	memory []article.Article

	// Background refreshes and cache writes outlive the call that
	// spawned them; the group lets shutdown drain them.
	bg sync.WaitGroup
}

// Options configures a Service. Provider is required; everything else
// has a working default.
type Options struct {
	Provider Provider
	Cache    *cache.ArticleCache
	Content  *cache.ContentCache
	Fetcher  cache.ContentFetcher
	Fallback []article.Article
	ReadWait time.Duration
	Metrics  *metrics.Metrics
}

func NewService(opts Options) *Service {
	fallback := opts.Fallback
	if fallback == nil {
		fallback = article.Fallback()
	}
	readWait := opts.ReadWait
	if readWait <= 0 {
		readWait = DefaultReadWait
	}
	return &Service{
		provider: opts.Provider,
		cache:    opts.Cache,
		content:  opts.Content,
		fetcher:  opts.Fetcher,
		fallback: fallback,
		readWait: readWait,
		metrics:  opts.Metrics,
		log:      logger.Log.WithField("component", "news_service"),
	}
}

// FetchArticles returns articles for a category, consulting each tier
// only when the previous one is empty. Results are date-validated,
// category-filtered, and sorted newest first at the boundary.
func (s *Service) FetchArticles(ctx context.Context, category string) []article.Article {
	// Tier 1: process memory. No I/O within a session once warm.
	if m := s.memorySnapshot(); len(m) > 0 {
		s.metrics.FetchResolved(metrics.TierMemory)
		return article.FilterByCategory(m, category)
	}

	// Tier 2: persistent cache, read under a bounded wait. On a hit,
	// serve immediately and revalidate in the background for the next
	// call (stale-while-revalidate).
	var cached []article.Article
	if s.cache != nil {
		readCtx, cancel := context.WithTimeout(ctx, s.readWait)
		cached = s.cache.Get(readCtx)
		cancel()
	}
	if len(cached) > 0 {
		s.setMemory(cached)
		s.spawnBackgroundRefresh()
		s.metrics.FetchResolved(metrics.TierPersistent)
		return article.FilterByCategory(cached, category)
	}

	// Tier 3: provider. The cache write is fire-and-forget so a slow
	// store cannot delay returning fresh data.
	if s.provider != nil {
		fetched, err := s.provider.FetchArticles(ctx, article.CategoryAll)
		if err == nil && len(fetched) > 0 {
			s.setMemory(fetched)
			s.spawnCacheWrite(fetched)
			s.metrics.FetchResolved(metrics.TierNetwork)
			return article.FilterByCategory(fetched, category)
		}
		if err != nil {
			s.log.WithError(err).Warn("provider fetch failed, using fallback")
		}
	}

	// Tier 4: bundled fallback. Static in-process data, cannot fail.
	s.metrics.FetchResolved(metrics.TierFallback)
	return article.FilterByCategory(s.fallback, category)
}

// Refresh always attempts the provider regardless of cache state. On
// failure it returns whatever the memory cache holds, or the fallback;
// callers wanting an explicit refresh-failed signal compare the result
// against what they had.
func (s *Service) Refresh(ctx context.Context) []article.Article {
	if s.provider != nil {
		fetched, err := s.provider.RefreshArticles(ctx)
		if err == nil && len(fetched) > 0 {
			s.setMemory(fetched)
			if s.cache != nil {
				s.cache.Set(ctx, fetched)
			}
			return article.FilterByCategory(fetched, article.CategoryAll)
		}
		if err != nil {
			s.log.WithError(err).Warn("refresh failed, serving cached")
		}
	}

	if m := s.memorySnapshot(); len(m) > 0 {
		return article.FilterByCategory(m, article.CategoryAll)
	}
	return article.FilterByCategory(s.fallback, article.CategoryAll)
}

// ArticleByID looks an article up in the memory cache, falling back to
// the bundled list.
func (s *Service) ArticleByID(id string) (article.Article, bool) {
	articles := s.memorySnapshot()
	if len(articles) == 0 {
		articles = s.fallback
	}
	for _, a := range articles {
		if a.ID == id {
			return a, true
		}
	}
	return article.Article{}, false
}

// HasOfflineData reports whether a usable persistent cache entry
// exists.
func (s *Service) HasOfflineData(ctx context.Context) bool {
	return s.cache != nil && len(s.cache.Get(ctx)) > 0
}

// PreloadContent warms the content cache for the given URLs in the
// background. Fire-and-forget; Drain waits for it.
func (s *Service) PreloadContent(urls []string) {
	if s.content == nil || s.fetcher == nil {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		s.content.Preload(context.Background(), urls, s.fetcher)
	}()
}

// Drain waits for outstanding background refreshes, cache writes, and
// preloads. Late writes are harmless duplicates, but an orderly
// shutdown can choose to let them finish.
func (s *Service) Drain() {
	s.bg.Wait()
}

// spawnBackgroundRefresh fetches fresh data after a persistent cache
// hit so the next call sees current articles without this one waiting.
func (s *Service) spawnBackgroundRefresh() {
	if s.provider == nil {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		ctx := context.Background()
		fetched, err := s.provider.FetchArticles(ctx, article.CategoryAll)
		if err != nil || len(fetched) == 0 {
			s.log.WithError(err).Debug("background refresh failed")
			return
		}
		s.setMemory(fetched)
		if s.cache != nil {
			s.cache.Set(ctx, fetched)
		}
	}()
}

func (s *Service) spawnCacheWrite(articles []article.Article) {
	if s.cache == nil {
		return
	}
	s.bg.Add(1)
	go func() {
		defer s.bg.Done()
		s.cache.Set(context.Background(), articles)
	}()
}

// setMemory replaces the whole memory cache atomically; concurrent
// writers never merge, so a lost update only means slightly older
// data on the next read.
func (s *Service) setMemory(articles []article.Article) {
	s.mu.Lock()
	s.memory = articles
	s.mu.Unlock()
}

func (s *Service) memorySnapshot() []article.Article {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.memory) == 0 {
		return nil
	}
	out := make([]article.Article, len(s.memory))
	copy(out, s.memory)
	return out
}
