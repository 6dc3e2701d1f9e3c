package source

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/oddlabs/oddly/internal/article"
)

const (
	// Only the first few image-less articles are worth a page fetch.
	ogImageTop     = 10
	ogImageTimeout = 5 * time.Second
)

// backfillImages scrapes og:image metadata for the leading articles
// that arrived without a thumbnail. Best-effort: a failed page fetch
// leaves the image empty and the reader shows a placeholder.
func (r *RSS) backfillImages(ctx context.Context, articles []article.Article) {
	if r.imageTop <= 0 {
		return
	}
	var missing []int
	for i := range articles {
		if articles[i].ImageURL == "" {
			missing = append(missing, i)
		}
		if len(missing) >= r.imageTop {
			break
		}
	}
	if len(missing) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, idx := range missing {
		idx := idx
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := fetchOGImage(ctx, articles[idx].URL)
			if err != nil {
				r.log.WithField("url", articles[idx].URL).WithError(err).Debug("og:image fetch failed")
				return
			}
			articles[idx].ImageURL = img
		}()
	}
	wg.Wait()
}

// fetchOGImage loads the article page and pulls the og:image (or
// twitter:image) meta tag.
func fetchOGImage(ctx context.Context, pageURL string) (string, error) {
	reqCtx, cancel := context.WithTimeout(ctx, ogImageTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", rssUserAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("page fetch: HTTP " + resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	for _, sel := range []string{
		`meta[property="og:image"]`,
		`meta[name="twitter:image"]`,
	} {
		if img, ok := doc.Find(sel).First().Attr("content"); ok && img != "" {
			return img, nil
		}
	}
	return "", errors.New("no og:image tag")
}
