package cli

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/oddlabs/oddly/internal/api"
	"github.com/oddlabs/oddly/internal/cache"
	"github.com/oddlabs/oddly/internal/config"
	"github.com/oddlabs/oddly/internal/extract"
	"github.com/oddlabs/oddly/internal/metrics"
	"github.com/oddlabs/oddly/internal/news"
	"github.com/oddlabs/oddly/internal/source"
	"github.com/oddlabs/oddly/internal/storage"
)

// app wires the pipeline from configuration: storage, both caches,
// the article provider (API client or direct feeds), the content
// fetcher, and the news service on top.
type app struct {
	cfg      *config.Config
	store    *storage.SQLite
	articles *cache.ArticleCache
	content  *cache.ContentCache
	client   *api.Client // nil in direct-feed mode
	fetcher  cache.ContentFetcher
	service  *news.Service
}

func newApp() (*app, error) {
	cfg, err := config.Load(configDir)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	store, err := storage.Open(cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	m := metrics.New(prometheus.NewRegistry())

	articles := cache.NewArticleCache(store, cfg.Cache.ArticleTTL.Duration)
	content := cache.NewContentCache(store, cfg.Cache.ContentTTL.Duration, cfg.Cache.MemoryEntries)
	content.SetMetrics(m)
	content.SetPreloadPolicy(cfg.Preload.Top, cfg.Preload.Batch, cfg.Preload.Timeout.Duration)

	var (
		provider news.Provider
		fetcher  cache.ContentFetcher
		client   *api.Client
	)
	if cfg.API.BaseURL != "" {
		client, err = api.NewClient(cfg.API.BaseURL)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("create api client: %w", err)
		}
		provider = client
		fetcher = client
	} else {
		rss, err := source.NewRSS(cfg.Feeds)
		if err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("create rss source: %w", err)
		}
		provider = rss
		fetcher = extract.New()
	}

	svc := news.NewService(news.Options{
		Provider: provider,
		Cache:    articles,
		Content:  content,
		Fetcher:  fetcher,
		ReadWait: cfg.Cache.ReadWait.Duration,
		Metrics:  m,
	})

	return &app{
		cfg:      cfg,
		store:    store,
		articles: articles,
		content:  content,
		client:   client,
		fetcher:  fetcher,
		service:  svc,
	}, nil
}

// close drains background work before releasing the store so late
// cache writes land.
func (a *app) close() {
	a.service.Drain()
	_ = a.store.Close()
}
