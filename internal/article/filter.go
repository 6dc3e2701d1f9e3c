package article

import "sort"

// Normalize drops articles without a valid publication time. Dates
// cross JSON boundaries as strings and can arrive unparsed or zero;
// filtering happens before any sort so comparisons never touch an
// invalid timestamp.
func Normalize(articles []Article) []Article {
	out := make([]Article, 0, len(articles))
	for _, a := range articles {
		if a.PublishedAt.IsZero() {
			continue
		}
		out = append(out, a)
	}
	return out
}

// FilterByCategory validates dates, keeps articles in the requested
// category, and sorts newest first. Applied at every tier boundary of
// the fetch pipeline before results are handed to a caller.
func FilterByCategory(articles []Article, category string) []Article {
	valid := Normalize(articles)

	filtered := valid
	if category != "" && category != CategoryAll {
		filtered = make([]Article, 0, len(valid))
		for _, a := range valid {
			if a.Category == category {
				filtered = append(filtered, a)
			}
		}
	}

	sort.SliceStable(filtered, func(i, j int) bool {
		return filtered[i].PublishedAt.After(filtered[j].PublishedAt)
	})
	return filtered
}
