package cache

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"sync"
	"time"

	"github.com/oddlabs/oddly/internal/logger"
	"github.com/oddlabs/oddly/internal/metrics"
	"github.com/oddlabs/oddly/internal/storage"
)

const (
	contentKeyPrefix  = "oddly_content_"
	DefaultContentTTL = 7 * 24 * time.Hour

	// DefaultMemoryEntries bounds the in-memory layer. Eviction is by
	// insertion order, not access order: full LRU buys nothing here.
	DefaultMemoryEntries = 20

	// Preload policy: warm the first PreloadTop URLs, PreloadBatch at
	// a time, each request bounded by PreloadTimeout.
	PreloadTop     = 10
	PreloadBatch   = 5
	PreloadTimeout = 5 * time.Second
)

// ContentFetcher retrieves the extracted full text of an article.
type ContentFetcher interface {
	FetchContent(ctx context.Context, articleURL string) (string, error)
}

// contentEntry is the persistent per-URL blob.
type contentEntry struct {
	Content   string `json:"content"`
	Timestamp int64  `json:"timestamp"` // unix milliseconds
}

// ContentCache caches extracted article text per URL: a bounded
// in-memory map in front of the KV store, each with its own lifetime.
// Full text is expensive to fetch and far more stable than headline
// metadata, hence the independent 7-day TTL.
type ContentCache struct {
	kv      storage.KV
	ttl     time.Duration
	maxMem  int
	now     func() time.Time
	log     *logger.Entry
	metrics *metrics.Metrics

	preloadTop     int
	preloadBatch   int
	preloadTimeout time.Duration

	mu    sync.Mutex
	mem   map[string]string
	order []string // insertion order of mem keys, oldest first
}

func NewContentCache(kv storage.KV, ttl time.Duration, maxMem int) *ContentCache {
	if ttl <= 0 {
		ttl = DefaultContentTTL
	}
	if maxMem <= 0 {
		maxMem = DefaultMemoryEntries
	}
	return &ContentCache{
		kv:             kv,
		ttl:            ttl,
		maxMem:         maxMem,
		now:            time.Now,
		log:            logger.Log.WithField("component", "content_cache"),
		mem:            make(map[string]string),
		preloadTop:     PreloadTop,
		preloadBatch:   PreloadBatch,
		preloadTimeout: PreloadTimeout,
	}
}

// SetMetrics attaches pipeline metrics. Safe to skip.
func (c *ContentCache) SetMetrics(m *metrics.Metrics) { c.metrics = m }

// SetPreloadPolicy overrides the preload bounds. Zero values keep the
// current setting.
func (c *ContentCache) SetPreloadPolicy(top, batch int, timeout time.Duration) {
	if top > 0 {
		c.preloadTop = top
	}
	if batch > 0 {
		c.preloadBatch = batch
	}
	if timeout > 0 {
		c.preloadTimeout = timeout
	}
}

func contentKey(articleURL string) string {
	return contentKeyPrefix + url.QueryEscape(articleURL)
}

// Get returns cached content for the URL, or empty string on miss.
// The in-memory layer answers without I/O; a persistent hit backfills
// it. Expired persistent entries are removed on the way out.
func (c *ContentCache) Get(ctx context.Context, articleURL string) string {
	c.mu.Lock()
	cached, ok := c.mem[articleURL]
	c.mu.Unlock()
	if ok {
		c.metrics.ContentCacheHit(metrics.LayerMemory)
		return cached
	}

	key := contentKey(articleURL)
	raw, err := c.kv.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.WithError(err).Warn("content read failed")
		}
		c.metrics.ContentCacheMiss()
		return ""
	}

	var entry contentEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.WithError(err).Warn("content entry malformed")
		c.metrics.ContentCacheMiss()
		return ""
	}

	if c.now().UnixMilli()-entry.Timestamp > c.ttl.Milliseconds() {
		if err := c.kv.Remove(ctx, key); err != nil {
			c.log.WithError(err).Debug("expired content remove failed")
		}
		c.metrics.ContentCacheMiss()
		return ""
	}

	c.insertMem(articleURL, entry.Content)
	c.metrics.ContentCacheHit(metrics.LayerPersistent)
	return entry.Content
}

// Set writes the persistent entry, then updates the in-memory layer.
// Like the article cache, persistence failures never reach the caller.
func (c *ContentCache) Set(ctx context.Context, articleURL, content string) {
	entry := contentEntry{Content: content, Timestamp: c.now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.log.WithError(err).Warn("content encode failed")
		return
	}
	if err := c.kv.Set(ctx, contentKey(articleURL), string(raw)); err != nil {
		c.log.WithError(err).Warn("content write failed")
	}
	c.insertMem(articleURL, content)
}

// insertMem adds a key to the memory layer, evicting the
// oldest-inserted entry once the capacity bound is reached. No
// multi-step invariant spans a call, so the single lock suffices.
func (c *ContentCache) insertMem(articleURL, content string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.mem[articleURL]; exists {
		c.mem[articleURL] = content
		return
	}
	if len(c.mem) >= c.maxMem && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.mem, oldest)
	}
	c.mem[articleURL] = content
	c.order = append(c.order, articleURL)
}

// Clear bulk-removes every persistent content entry and empties the
// memory layer. Returns the number of persistent entries removed.
func (c *ContentCache) Clear(ctx context.Context) (int, error) {
	keys, err := c.kv.Keys(ctx, contentKeyPrefix)
	if err != nil {
		return 0, err
	}
	cleared := 0
	for _, k := range keys {
		if err := c.kv.Remove(ctx, k); err != nil {
			return cleared, err
		}
		cleared++
	}

	c.mu.Lock()
	c.mem = make(map[string]string)
	c.order = nil
	c.mu.Unlock()

	return cleared, nil
}

// Preload warms the cache for the first preloadTop URLs that have no
// entry yet, fetching in sequential batches of preloadBatch concurrent
// requests, each canceled after preloadTimeout. Preloading is
// best-effort: per-URL failures are dropped and the method never
// returns an error. Callers run it in a background goroutine.
func (c *ContentCache) Preload(ctx context.Context, urls []string, fetcher ContentFetcher) {
	if fetcher == nil {
		return
	}

	candidates := urls
	if len(candidates) > c.preloadTop {
		candidates = candidates[:c.preloadTop]
	}

	var uncached []string
	for _, u := range candidates {
		if c.Get(ctx, u) == "" {
			uncached = append(uncached, u)
		}
	}

	for start := 0; start < len(uncached); start += c.preloadBatch {
		end := start + c.preloadBatch
		if end > len(uncached) {
			end = len(uncached)
		}

		var wg sync.WaitGroup
		for _, u := range uncached[start:end] {
			u := u
			wg.Add(1)
			go func() {
				defer wg.Done()
				c.preloadOne(ctx, u, fetcher)
			}()
		}
		wg.Wait()

		if ctx.Err() != nil {
			return
		}
	}
}

func (c *ContentCache) preloadOne(ctx context.Context, articleURL string, fetcher ContentFetcher) {
	reqCtx, cancel := context.WithTimeout(ctx, c.preloadTimeout)
	defer cancel()

	c.metrics.PreloadFetch()
	content, err := fetcher.FetchContent(reqCtx, articleURL)
	if err != nil || content == "" {
		c.log.WithField("url", articleURL).WithError(err).Debug("preload skipped")
		return
	}
	c.Set(ctx, articleURL, content)
}
