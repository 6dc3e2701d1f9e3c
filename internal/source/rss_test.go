package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/logger"
)

func testLogEntry() *logger.Entry {
	return logger.Log.WithField("component", "rss_source")
}

const rssXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
  <title>Weird News</title>
  <item>
    <title>Seal Pup Found in Cornwall Garden</title>
    <link>https://example.com/seal?at_medium=rss</link>
    <description><![CDATA[<p>A seal pup escaped rough seas.</p>]]></description>
    <guid>seal-1</guid>
    <pubDate>Sat, 31 Jan 2026 12:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Minister Announces Budget</title>
    <link>https://example.com/budget</link>
    <description>Parliament debates the new policy.</description>
    <guid>budget-1</guid>
    <pubDate>Fri, 30 Jan 2026 09:00:00 +0000</pubDate>
  </item>
  <item>
    <title>Raccoon Goes Viral in Bizarre Escape</title>
    <link>https://example.com/raccoon</link>
    <description>The raccoon broke the internet.</description>
    <guid>raccoon-1</guid>
    <pubDate>Thu, 29 Jan 2026 09:00:00 +0000</pubDate>
  </item>
</channel>
</rss>`

func serveFeed(t *testing.T, xml string) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprint(w, xml)
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func TestNewRSSRequiresFeeds(t *testing.T) {
	if _, err := NewRSS(nil); err == nil {
		t.Fatal("expected error for empty feed list")
	}
}

func TestFetchArticlesFiltered(t *testing.T) {
	feedURL := serveFeed(t, rssXML)
	rss, err := NewRSS([]Feed{{URL: feedURL, Category: "viral", Source: "Test Feed"}})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	rss.imageTop = 0 // no image backfill against real origins in tests

	articles, err := rss.FetchArticles(context.Background(), article.CategoryAll)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}

	// The budget story fails the oddness filter.
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}
	for _, a := range articles {
		if a.ID == "budget-1" {
			t.Fatal("boring story survived the filter")
		}
		if a.Source != "Test Feed" || a.Category != "viral" {
			t.Fatalf("feed attribution wrong: %+v", a)
		}
		if a.PublishedAt.IsZero() {
			t.Fatalf("article %s has no date", a.ID)
		}
	}

	// Newest first, tracking suffix stripped, HTML removed from summary.
	if articles[0].ID != "seal-1" {
		t.Fatalf("not sorted newest first: %s", articles[0].ID)
	}
	if articles[0].URL != "https://example.com/seal" {
		t.Fatalf("tracking suffix kept: %s", articles[0].URL)
	}
	if articles[0].Summary != "A seal pup escaped rough seas." {
		t.Fatalf("summary = %q", articles[0].Summary)
	}
}

func TestFetchArticlesAlwaysOdd(t *testing.T) {
	feedURL := serveFeed(t, rssXML)
	rss, err := NewRSS([]Feed{{URL: feedURL, Category: "viral", Source: "Test Feed", AlwaysOdd: true}})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	rss.imageTop = 0

	articles, err := rss.FetchArticles(context.Background(), article.CategoryAll)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	// Always-odd feeds bypass the filter entirely.
	if len(articles) != 3 {
		t.Fatalf("expected 3 articles, got %d", len(articles))
	}
}

func TestFetchArticlesByCategory(t *testing.T) {
	feedURL := serveFeed(t, rssXML)
	rss, err := NewRSS([]Feed{
		{URL: feedURL, Category: "viral", Source: "Viral Feed", AlwaysOdd: true},
		{URL: "https://unreachable.invalid/feed", Category: "tech", Source: "Tech Feed"},
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	rss.imageTop = 0

	// Selecting a category only fetches matching feeds, so the
	// unreachable tech feed is never touched.
	articles, err := rss.FetchArticles(context.Background(), "viral")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("expected 3 viral articles, got %d", len(articles))
	}
}

func TestFetchArticlesFeedFailureIsSoft(t *testing.T) {
	feedURL := serveFeed(t, rssXML)
	rss, err := NewRSS([]Feed{
		{URL: "https://unreachable.invalid/feed", Category: "viral", Source: "Broken", AlwaysOdd: true},
		{URL: feedURL, Category: "viral", Source: "Working", AlwaysOdd: true},
	})
	if err != nil {
		t.Fatalf("create source: %v", err)
	}
	rss.imageTop = 0

	articles, err := rss.FetchArticles(context.Background(), article.CategoryAll)
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if len(articles) != 3 {
		t.Fatalf("one broken feed should not empty the result: got %d", len(articles))
	}
}

func TestBackfillImages(t *testing.T) {
	page := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = fmt.Fprint(w, `<html><head>
			<meta property="og:image" content="https://img.example.com/seal.jpg"/>
		</head><body>story</body></html>`)
	}))
	t.Cleanup(page.Close)

	rss := &RSS{imageTop: 10, log: testLogEntry()}
	articles := []article.Article{
		{ID: "1", URL: page.URL, Title: "Seal"},
		{ID: "2", URL: page.URL, Title: "Raccoon", ImageURL: "https://img.example.com/existing.jpg"},
	}
	rss.backfillImages(context.Background(), articles)

	if articles[0].ImageURL != "https://img.example.com/seal.jpg" {
		t.Fatalf("og:image not filled: %q", articles[0].ImageURL)
	}
	if articles[1].ImageURL != "https://img.example.com/existing.jpg" {
		t.Fatalf("existing image overwritten: %q", articles[1].ImageURL)
	}
}

func TestCleanText(t *testing.T) {
	got := cleanText("<p>A &amp; B</p>   extra")
	if got != "A & B extra" {
		t.Fatalf("cleanText = %q", got)
	}
}
