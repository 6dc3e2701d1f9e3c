// Package stats models per-article view and reaction counts.
package stats

import "fmt"

// Reaction emojis recognized by the tracking endpoint.
const (
	ReactionMindBlown = "🤯"
	ReactionLaugh     = "😂"
	ReactionSick      = "🤮"
)

// ArticleStats is the social-proof data returned per article ID.
type ArticleStats struct {
	Views     int            `json:"views"`
	Reactions map[string]int `json:"reactions"`
}

// FormatViews renders a view count for display: 999, 1.2k, 45k.
func FormatViews(views int) string {
	switch {
	case views < 1000:
		return fmt.Sprintf("%d", views)
	case views < 10000:
		return fmt.Sprintf("%.1fk", float64(views)/1000)
	default:
		return fmt.Sprintf("%dk", views/1000)
	}
}

// DominantReaction returns the most common reaction and its share of
// the total, or ok=false when there are no reactions.
func DominantReaction(reactions map[string]int) (emoji string, percent int, ok bool) {
	total := 0
	for _, n := range reactions {
		total += n
	}
	if total == 0 {
		return "", 0, false
	}

	best := -1
	// Fixed iteration order keeps ties deterministic.
	for _, e := range []string{ReactionMindBlown, ReactionLaugh, ReactionSick} {
		if n := reactions[e]; n > best {
			best = n
			emoji = e
		}
	}
	return emoji, int(float64(best)/float64(total)*100 + 0.5), true
}
