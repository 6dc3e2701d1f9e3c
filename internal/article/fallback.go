package article

import "time"

// Fallback returns the bundled articles served when the network and
// every cache are unavailable, so a first launch while offline still
// shows real content. The list is static in-process data and is the
// one tier of the pipeline that cannot fail.
func Fallback() []Article {
	return []Article{
		{
			ID:          "fallback-1",
			Title:       "Seal Pup Found in Cornwall Garden After Storm",
			Summary:     "A seal pup escaped rough seas, crossed the coastal path, and ended up beside a chicken coop.",
			URL:         "https://www.bbc.co.uk/news/articles/c99k2m78dl2o",
			ImageURL:    "https://ichef.bbci.co.uk/ace/branded_news/1200/cpsprodpb/86c1/live/33837de0-fd28-11f0-890b-55ca0a00c59d.jpg",
			Source:      "BBC",
			Category:    "animals",
			PublishedAt: time.Date(2026, 1, 31, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "fallback-2",
			Title:       "Raccoon Stows Away to Belarus in Shipped Car",
			Summary:     "Customs found a raccoon napping on the dashboard. He's now named Senya and loves eggs.",
			URL:         "https://www.upi.com/Odd_News/2026/01/30/belarus-raccoon-stowaway-shipped/7831769792654/",
			ImageURL:    "https://cdnph.upi.com/ph/st/th/7831769792654/2026/i/17697927912453/v1.5/Raccoon-stows-away-to-Belarus-in-shipped-car.jpg?lg=5",
			Source:      "UPI",
			Category:    "animals",
			PublishedAt: time.Date(2026, 1, 30, 0, 0, 0, 0, time.UTC),
		},
		{
			ID:          "fallback-3",
			Title:       "Dad Buys Pirate Ship on eBay for £500, Lives in It",
			Summary:     "Sam Griffiss, 35, converted an eBay pirate ship into an off-grid home by the River Severn.",
			URL:         "https://www.mirror.co.uk/news/weird-news/dad-buys-pirate-ship-ebay-36634191",
			ImageURL:    "https://i2-prod.mirror.co.uk/article36635314.ece/ALTERNATES/s1200/622779517_10162341983697843_2559324211036302931_n.jpg",
			Source:      "Mirror",
			Category:    "viral",
			PublishedAt: time.Date(2026, 1, 29, 0, 0, 0, 0, time.UTC),
		},
	}
}
