// Package cache implements the persistent article-list cache and the
// two-layer content cache with its preloader.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/logger"
	"github.com/oddlabs/oddly/internal/storage"
)

const (
	articlesKey       = "oddly_articles_cache"
	DefaultArticleTTL = 30 * time.Minute
)

// cacheEntry is the single blob stored under articlesKey. Articles and
// timestamp live in one value so a read never pairs a list with a
// timestamp from a different write.
type cacheEntry struct {
	Articles  []article.Article `json:"articles"`
	Timestamp int64             `json:"timestamp"` // unix milliseconds
}

// ArticleCache wraps a KV store with a TTL'd article-list blob.
type ArticleCache struct {
	kv  storage.KV
	ttl time.Duration
	now func() time.Time
	log *logger.Entry
}

func NewArticleCache(kv storage.KV, ttl time.Duration) *ArticleCache {
	if ttl <= 0 {
		ttl = DefaultArticleTTL
	}
	return &ArticleCache{
		kv:  kv,
		ttl: ttl,
		now: time.Now,
		log: logger.Log.WithField("component", "article_cache"),
	}
}

// Get returns the cached article list, or nil when there is no entry,
// the entry is malformed, or it has outlived the TTL. Publication
// times arrive re-hydrated as real timestamps.
func (c *ArticleCache) Get(ctx context.Context) []article.Article {
	raw, err := c.kv.Get(ctx, articlesKey)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			c.log.WithError(err).Warn("cache read failed")
		}
		return nil
	}

	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		c.log.WithError(err).Warn("cache entry malformed")
		return nil
	}

	age := c.now().UnixMilli() - entry.Timestamp
	if age > c.ttl.Milliseconds() {
		return nil
	}
	return article.Normalize(entry.Articles)
}

// Set overwrites the cached list in one write. Persistence failures
// are logged and swallowed: cache absence is always a safe state, and
// a failed write must never disturb the read path that triggered it.
func (c *ArticleCache) Set(ctx context.Context, articles []article.Article) {
	entry := cacheEntry{Articles: articles, Timestamp: c.now().UnixMilli()}
	raw, err := json.Marshal(entry)
	if err != nil {
		c.log.WithError(err).Warn("cache encode failed")
		return
	}
	if err := c.kv.Set(ctx, articlesKey, string(raw)); err != nil {
		c.log.WithError(err).Warn("cache write failed")
	}
}

// Clear removes the entry outright.
func (c *ArticleCache) Clear(ctx context.Context) error {
	return c.kv.Remove(ctx, articlesKey)
}

// Info reports whether an entry exists and its age. Age is zero when
// nothing is cached.
func (c *ArticleCache) Info(ctx context.Context) (cached bool, age time.Duration) {
	raw, err := c.kv.Get(ctx, articlesKey)
	if err != nil {
		return false, 0
	}
	var entry cacheEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		return false, 0
	}
	return true, time.Duration(c.now().UnixMilli()-entry.Timestamp) * time.Millisecond
}
