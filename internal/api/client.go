// Package api is the client for the remote odd-news API: article
// lists, full-content extraction, per-article stats, and event
// tracking.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/stats"
)

const (
	// The remote can be slow on its own cache miss, so the list fetch
	// gets more headroom than the content endpoint.
	fetchTimeout   = 8 * time.Second
	refreshTimeout = 10 * time.Second
	contentTimeout = 5 * time.Second
)

// Client talks to the odd-news API. Every request carries an explicit
// deadline via context cancellation: a timed-out request is aborted,
// not abandoned.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("api: base URL is required")
	}
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{},
	}, nil
}

// wireArticle carries dates as ISO strings across the JSON boundary.
type wireArticle struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Summary     string `json:"summary"`
	Content     string `json:"content"`
	URL         string `json:"url"`
	ImageURL    string `json:"imageUrl"`
	Source      string `json:"source"`
	Category    string `json:"category"`
	PublishedAt string `json:"publishedAt"`
}

type articlesResponse struct {
	Articles []wireArticle `json:"articles"`
}

// FetchArticles returns the article list for a category. Articles with
// unparseable publication dates are dropped at this boundary.
func (c *Client) FetchArticles(ctx context.Context, category string) ([]article.Article, error) {
	endpoint := c.baseURL + "/api/articles"
	if category != "" && category != article.CategoryAll {
		endpoint += "?category=" + url.QueryEscape(category)
	}
	return c.fetchList(ctx, endpoint, fetchTimeout)
}

// RefreshArticles asks the server to bypass its own cache.
func (c *Client) RefreshArticles(ctx context.Context) ([]article.Article, error) {
	return c.fetchList(ctx, c.baseURL+"/api/articles?refresh=true", refreshTimeout)
}

func (c *Client) fetchList(ctx context.Context, endpoint string, timeout time.Duration) ([]article.Article, error) {
	reqCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch articles: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch articles: HTTP %d", resp.StatusCode)
	}

	var body articlesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode articles: %w", err)
	}
	if body.Articles == nil {
		return nil, errors.New("response missing articles array")
	}

	articles := make([]article.Article, 0, len(body.Articles))
	for _, w := range body.Articles {
		publishedAt, err := parseDate(w.PublishedAt)
		if err != nil {
			continue
		}
		articles = append(articles, article.Article{
			ID:          w.ID,
			Title:       w.Title,
			Summary:     w.Summary,
			Content:     w.Content,
			URL:         w.URL,
			ImageURL:    w.ImageURL,
			Source:      w.Source,
			Category:    w.Category,
			PublishedAt: publishedAt,
		})
	}
	return articles, nil
}

// FetchContent returns the extracted full text for an article URL.
func (c *Client) FetchContent(ctx context.Context, articleURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, contentTimeout)
	defer cancel()

	endpoint := c.baseURL + "/api/content?url=" + url.QueryEscape(articleURL)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch content: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetch content: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode content: %w", err)
	}
	return body.Content, nil
}

// FetchStats returns view/reaction stats for the given article IDs.
func (c *Client) FetchStats(ctx context.Context, ids []string) (map[string]stats.ArticleStats, error) {
	if len(ids) == 0 {
		return map[string]stats.ArticleStats{}, nil
	}

	reqCtx, cancel := context.WithTimeout(ctx, contentTimeout)
	defer cancel()

	endpoint := c.baseURL + "/api/stats?ids=" + url.QueryEscape(strings.Join(ids, ","))
	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch stats: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch stats: HTTP %d", resp.StatusCode)
	}

	var body struct {
		Stats map[string]stats.ArticleStats `json:"stats"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode stats: %w", err)
	}
	if body.Stats == nil {
		return map[string]stats.ArticleStats{}, nil
	}
	return body.Stats, nil
}

// TrackEvent reports a view or reaction. Fire-and-forget: tracking
// must never break the reading flow, so failures are returned only for
// the caller to log or drop.
func (c *Client) TrackEvent(ctx context.Context, articleID, event, reaction string) error {
	reqCtx, cancel := context.WithTimeout(ctx, contentTimeout)
	defer cancel()

	payload := map[string]string{"articleId": articleID, "event": event}
	if reaction != "" {
		payload["reaction"] = reaction
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, c.baseURL+"/api/track", bytes.NewReader(raw))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("track event: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return fmt.Errorf("track event: HTTP %d", resp.StatusCode)
	}
	return nil
}

func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("empty date")
	}
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}
