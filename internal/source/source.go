// Package source fetches odd-news articles straight from publisher
// RSS/Atom feeds, for running without the aggregation API. Feeds are
// either dedicated weird-news sections taken as-is, or general feeds
// filtered through the oddness patterns.
package source

// Feed describes one RSS/Atom feed and how its items are classified.
type Feed struct {
	URL       string `yaml:"url"`
	Category  string `yaml:"category"`
	Source    string `yaml:"source"`
	AlwaysOdd bool   `yaml:"always_odd"` // skip the oddness filter
}

// DefaultFeeds mirrors the feed set the reader ships with.
func DefaultFeeds() []Feed {
	return []Feed{
		{URL: "https://rss.upi.com/news/odd_news.rss", Category: "viral", Source: "UPI Odd", AlwaysOdd: true},
		{URL: "https://metro.co.uk/tag/weird/feed/", Category: "viral", Source: "Metro", AlwaysOdd: true},
		{URL: "https://www.mirror.co.uk/news/weird-news/rss.xml", Category: "viral", Source: "Mirror", AlwaysOdd: true},
		{URL: "https://www.dailystar.co.uk/news/weird-news/rss.xml", Category: "viral", Source: "Daily Star", AlwaysOdd: true},
		{URL: "https://www.odditycentral.com/feed", Category: "viral", Source: "Oddity Central", AlwaysOdd: true},
		{URL: "https://www.atlasobscura.com/feeds/latest", Category: "world", Source: "Atlas Obscura", AlwaysOdd: true},
		{URL: "https://www.theregister.com/offbeat/headlines.atom", Category: "tech", Source: "The Register", AlwaysOdd: true},
		{URL: "https://feeds.arstechnica.com/arstechnica/index", Category: "tech", Source: "Ars Technica"},
		{URL: "https://feeds.bbci.co.uk/news/england/rss.xml", Category: "viral", Source: "BBC"},
		{URL: "https://feeds.bbci.co.uk/news/science_and_environment/rss.xml", Category: "animals", Source: "BBC"},
		{URL: "https://feeds.bbci.co.uk/sport/rss.xml", Category: "sport", Source: "BBC Sport"},
		{URL: "https://www.thedodo.com/rss", Category: "animals", Source: "The Dodo", AlwaysOdd: true},
		{URL: "https://www.foodbeast.com/feed/", Category: "food", Source: "Foodbeast", AlwaysOdd: true},
		{URL: "https://www.theguardian.com/world/rss", Category: "world", Source: "Guardian"},
		{URL: "https://boingboing.net/feed", Category: "viral", Source: "Boing Boing", AlwaysOdd: true},
	}
}
