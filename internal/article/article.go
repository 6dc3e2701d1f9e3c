// Package article defines the news article model and the pure list
// operations (deduplication, category filtering, date normalization)
// applied wherever article lists are assembled.
package article

import "time"

// Article is a single odd-news item.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Content     string    `json:"content,omitempty"` // populated lazily via the content cache
	URL         string    `json:"url"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Source      string    `json:"source"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
}

// CategoryAll selects every category.
const CategoryAll = "all"

// Categories is the default category set. The pipeline treats
// categories as opaque strings; this list exists for display and
// validation at the edges only.
var Categories = []string{
	"all",
	"animals",
	"british",
	"crime",
	"fails",
	"food",
	"mystery",
	"property",
	"viral",
	"world",
	"sport",
	"tech",
}
