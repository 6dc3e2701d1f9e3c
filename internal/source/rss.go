package source

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mmcdole/gofeed"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/logger"
)

const (
	rssFetchTimeout = 15 * time.Second
	rssUserAgent    = "Mozilla/5.0 (compatible; oddly/1.0; +https://github.com/oddlabs/oddly)"
	rssMaxWorkers   = 8

	alwaysOddPerFeed = 12
	filteredPerFeed  = 10
	maxArticles      = 50
	summaryLimit     = 200
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	spacesRe  = regexp.MustCompile(`\s+`)
)

// RSS fetches odd-news articles directly from publisher feeds. It
// implements the news service's Provider interface, so a reader can
// run entirely without the aggregation API.
type RSS struct {
	feeds    []Feed
	imageTop int
	log      *logger.Entry
}

// NewRSS creates a direct-feed provider. At least one feed is required.
func NewRSS(feeds []Feed) (*RSS, error) {
	if len(feeds) == 0 {
		return nil, errors.New("rss: at least one feed is required")
	}
	return &RSS{
		feeds:    feeds,
		imageTop: ogImageTop,
		log:      logger.Log.WithField("component", "rss_source"),
	}, nil
}

// FetchArticles fetches every configured feed (or only those matching
// category), filters for oddness, sorts newest first, backfills
// missing images, and caps the result.
func (r *RSS) FetchArticles(ctx context.Context, category string) ([]article.Article, error) {
	feeds := r.feeds
	if category != "" && category != article.CategoryAll {
		feeds = nil
		for _, f := range r.feeds {
			if f.Category == category {
				feeds = append(feeds, f)
			}
		}
	}
	if len(feeds) == 0 {
		return nil, nil
	}

	type result struct {
		articles []article.Article
		err      error
		url      string
	}

	jobs := make(chan Feed, len(feeds))
	results := make(chan result, len(feeds))

	workers := rssMaxWorkers
	if len(feeds) < workers {
		workers = len(feeds)
	}

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for f := range jobs {
				items, err := r.fetchFeed(ctx, f)
				results <- result{articles: items, err: err, url: f.URL}
			}
		}()
	}

	for _, f := range feeds {
		jobs <- f
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	var articles []article.Article
	for res := range results {
		if res.err != nil {
			r.log.WithField("feed", res.url).WithError(res.err).Warn("feed fetch failed")
			continue
		}
		articles = append(articles, res.articles...)
	}

	sort.SliceStable(articles, func(i, j int) bool {
		return articles[i].PublishedAt.After(articles[j].PublishedAt)
	})

	r.backfillImages(ctx, articles)

	if len(articles) > maxArticles {
		articles = articles[:maxArticles]
	}
	return articles, nil
}

// RefreshArticles is a full refetch; feeds have no cache to bypass.
func (r *RSS) RefreshArticles(ctx context.Context) ([]article.Article, error) {
	return r.FetchArticles(ctx, article.CategoryAll)
}

func (r *RSS) fetchFeed(ctx context.Context, f Feed) ([]article.Article, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, rssFetchTimeout)
	defer cancel()

	fp := gofeed.NewParser()
	fp.Client = &http.Client{
		Timeout:   rssFetchTimeout,
		Transport: &uaTransport{base: http.DefaultTransport},
	}
	feed, err := fp.ParseURLWithContext(f.URL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", f.URL, err)
	}

	limit := filteredPerFeed
	if f.AlwaysOdd {
		limit = alwaysOddPerFeed
	}

	var articles []article.Article
	for _, item := range feed.Items {
		if len(articles) >= limit {
			break
		}

		title := cleanText(item.Title)
		desc := cleanText(itemDescription(item))
		if title == "" || item.Link == "" {
			continue
		}
		if !f.AlwaysOdd && !IsOdd(title, desc) {
			continue
		}

		publishedAt := itemPublishedTime(item)
		if publishedAt.IsZero() {
			// Feeds occasionally omit dates; assume yesterday rather
			// than drop an otherwise good story.
			publishedAt = time.Now().Add(-24 * time.Hour)
		}

		articles = append(articles, article.Article{
			ID:          itemID(item),
			Title:       title,
			Summary:     truncate(desc, summaryLimit),
			URL:         cleanLink(item.Link),
			ImageURL:    itemImage(item),
			Source:      f.Source,
			Category:    f.Category,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}

// uaTransport injects a User-Agent header into every request.
type uaTransport struct {
	base http.RoundTripper
}

func (t *uaTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.Header.Set("User-Agent", rssUserAgent)
	return t.base.RoundTrip(req)
}

func itemPublishedTime(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	return time.Time{}
}

func itemID(item *gofeed.Item) string {
	if item.GUID != "" {
		return item.GUID
	}
	if item.Link != "" {
		return item.Link
	}
	return uuid.NewString()
}

func itemDescription(item *gofeed.Item) string {
	if item.Description != "" {
		return item.Description
	}
	return item.Content
}

func itemImage(item *gofeed.Item) string {
	if item.Image != nil && item.Image.URL != "" {
		return item.Image.URL
	}
	for _, enc := range item.Enclosures {
		if strings.HasPrefix(enc.Type, "image/") && enc.URL != "" {
			return enc.URL
		}
	}
	return ""
}

func cleanText(s string) string {
	s = htmlTagRe.ReplaceAllString(s, " ")
	s = html.UnescapeString(s)
	s = spacesRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// cleanLink strips the tracking suffix some feeds append to links.
func cleanLink(link string) string {
	if i := strings.Index(link, "?at_medium="); i >= 0 {
		link = link[:i]
	}
	return strings.TrimSpace(link)
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
