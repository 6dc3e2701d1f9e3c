// Package extract pulls readable article text straight from publisher
// pages, serving as the content fetcher when no aggregation API is
// configured. Arbitrary third-party origins are the least reliable
// calls in the system, so this is the one client that retries.
package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
	"github.com/hashicorp/go-retryablehttp"
)

const (
	defaultTimeout = 10 * time.Second
	maxRetries     = 2
	userAgent      = "Mozilla/5.0 (compatible; oddly/1.0; +https://github.com/oddlabs/oddly)"
)

// Extractor fetches a page and reduces it to readable text. It
// implements the content cache's ContentFetcher interface.
type Extractor struct {
	client *http.Client
}

func New() *Extractor {
	r := retryablehttp.NewClient()
	r.RetryMax = maxRetries
	r.HTTPClient.Timeout = defaultTimeout
	r.Logger = nil
	return &Extractor{client: r.StandardClient()}
}

// FetchContent downloads the page and extracts its main text content.
func (e *Extractor) FetchContent(ctx context.Context, articleURL string) (string, error) {
	pageURL, err := url.Parse(articleURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, articleURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch page: HTTP %d", resp.StatusCode)
	}

	parsed, err := readability.FromReader(resp.Body, pageURL)
	if err != nil {
		return "", fmt.Errorf("extract content: %w", err)
	}

	text := strings.TrimSpace(parsed.TextContent)
	if text == "" {
		return "", fmt.Errorf("extract content: nothing readable at %s", articleURL)
	}
	return text, nil
}
