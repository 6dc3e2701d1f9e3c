package article

import (
	"regexp"
	"strings"
)

var (
	punctRe      = regexp.MustCompile(`[^\w\s]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Deduplicate collapses near-duplicate articles from overlapping feeds.
// An article is a duplicate when its canonical URL was already seen, or
// when its normalized title (first three words) was already seen under a
// different URL. First occurrence wins; callers wanting "best first"
// pre-sort the input. Surviving articles keep their relative order, and
// the function is idempotent.
func Deduplicate(articles []Article) []Article {
	seenURLs := make(map[string]bool, len(articles))
	seenTitles := make(map[string]bool, len(articles))

	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		urlKey := canonicalURLKey(a.URL)
		if seenURLs[urlKey] {
			continue
		}

		titleKey := normalizedTitleKey(a.Title)
		// An empty title normalizes to an empty key shared by every
		// untitled article; skip title matching rather than collapse
		// them all into one.
		if titleKey != "" && seenTitles[titleKey] {
			continue
		}

		seenURLs[urlKey] = true
		if titleKey != "" {
			seenTitles[titleKey] = true
		}
		out = append(out, a)
	}
	return out
}

// canonicalURLKey normalizes a URL so domain aliases and query-string
// variants of the same link compare equal.
func canonicalURLKey(rawURL string) string {
	key := rawURL
	if i := strings.IndexByte(key, '?'); i >= 0 {
		key = key[:i]
	}
	key = strings.TrimSuffix(key, "/")
	key = strings.Replace(key, "bbc.co.uk", "bbc.com", 1)
	key = strings.Replace(key, "www.", "", 1)
	return key
}

// normalizedTitleKey reduces a title to its first three words,
// lowercased and stripped of punctuation, so two outlets covering the
// same story collide.
func normalizedTitleKey(title string) string {
	t := strings.ToLower(title)
	t = punctRe.ReplaceAllString(t, "")
	t = whitespaceRe.ReplaceAllString(t, " ")
	t = strings.TrimSpace(t)
	if t == "" {
		return ""
	}
	words := strings.Split(t, " ")
	if len(words) > 3 {
		words = words[:3]
	}
	return strings.Join(words, " ")
}
