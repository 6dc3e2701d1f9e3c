package source

import "regexp"

// Oddness classification. A story from a general feed must clear the
// boring patterns and match at least one odd pattern to make the cut;
// dedicated weird-news feeds bypass this entirely.

var oddPatterns = []*regexp.Regexp{
	// Animals doing weird things
	regexp.MustCompile(`(?i)\b(seal|raccoon|snake|donkey|capybara|kangaroo|dog|cat|goat|pig|chicken|parrot|squirrel|fox|deer|bear|monkey|elephant|octopus|penguin|otter|hedgehog|llama|alpaca|sloth|crocodile|shark|whale|dolphin|owl|frog|turtle|tortoise)\b`),
	regexp.MustCompile(`(?i)\b(animal|pet|wildlife|creature)\b.*\b(unusual|bizarre|strange|surprise|rescue|escape|viral|hero)`),

	// World records and achievements
	regexp.MustCompile(`(?i)\b(world record|guinness|youngest|oldest|largest|smallest|longest|shortest|fastest|first ever|tallest)\b`),

	// Viral and internet culture
	regexp.MustCompile(`(?i)\b(viral|goes viral|meme|tiktok|reddit|trending|broke the internet)\b`),
	regexp.MustCompile(`(?i)\b(hilarious|bizarre|weird|strange|unusual|oddly|quirky|wacky|bonkers|unbelievable|incredible)\b`),

	// Lucky and unlucky events
	regexp.MustCompile(`(?i)\b(lottery|jackpot|winner|found|discover|stumble|luck|fortune)\b.*\b(million|fortune|treasure|rare|hidden|incredible)`),
	regexp.MustCompile(`(?i)\b(miracle|coincidence|one in a million|against all odds)\b`),

	// Fails and mishaps
	regexp.MustCompile(`(?i)\b(fail|glitch|mistake|blunder|oops|accident|backfire)\b`),
	regexp.MustCompile(`(?i)\b(ai|chatbot|robot|drone|self.driving)\b.*\b(fail|wrong|bizarre|weird|funny|chaos)`),

	// Food oddities
	regexp.MustCompile(`(?i)\b(food|meal|dish|restaurant|cafe|pizza|burger|sandwich)\b.*\b(bizarre|weird|unusual|strange|viral|giant|tiny|expensive)`),

	// Property oddities
	regexp.MustCompile(`(?i)\b(house|home|flat|property|mansion|castle|shed)\b.*\b(bizarre|weird|unusual|hidden|secret|discover|found|tiny|underground)`),
	regexp.MustCompile(`(?i)\b(pirate ship|treehouse|bunker|shipping container|van life)\b`),

	// Crime, but funny
	regexp.MustCompile(`(?i)\b(thief|robber|criminal|caught|arrested|police)\b.*\b(bizarre|funny|unusual|stupid|fail|hilarious|dumb)`),
	regexp.MustCompile(`(?i)\b(florida man|florida woman)\b`),

	// Sport oddities
	regexp.MustCompile(`(?i)\b(sport|football|cricket|tennis|golf|darts|snooker)\b.*\b(bizarre|weird|unusual|record|youngest|oldest|freak)`),

	// General oddity triggers
	regexp.MustCompile(`(?i)you won't believe`),
	regexp.MustCompile(`(?i)plot twist`),
	regexp.MustCompile(`(?i)turns out`),
	regexp.MustCompile(`(?i)mystery|mysterious`),
	regexp.MustCompile(`(?i)unexplained|inexplicable`),
	regexp.MustCompile(`(?i)haunted|ghost|paranormal|ufo|alien`),
	regexp.MustCompile(`(?i)prank|prankster`),
	regexp.MustCompile(`(?i)wholesome|heartwarming|adorable|cute`),
}

var boringPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(killed|murdered|dead|death|died|fatal|war|conflict|attack|terror|crisis)\b`),
	regexp.MustCompile(`(?i)\b(government|minister|parliament|election|vote|policy|budget)\b`),
	regexp.MustCompile(`(?i)\b(stock|market|economy|inflation|recession|bank|finance)\b`),
	regexp.MustCompile(`(?i)\b(weather|forecast|rain|snow|temperature|flood)\b`),
	regexp.MustCompile(`(?i)\b(match|score|defeat|victory|league|championship)\b`),
}

// IsOdd reports whether a title/description pair reads as odd news.
// Boring patterns reject outright before odd patterns are consulted.
func IsOdd(title, description string) bool {
	text := title + " " + description
	for _, p := range boringPatterns {
		if p.MatchString(text) {
			return false
		}
	}
	for _, p := range oddPatterns {
		if p.MatchString(text) {
			return true
		}
	}
	return false
}

// Oddness scores a story by pattern matches, ten points each. Boring
// stories score -100. Used for diagnostics; selection is binary.
func Oddness(title, description string) int {
	text := title + " " + description
	for _, p := range boringPatterns {
		if p.MatchString(text) {
			return -100
		}
	}
	score := 0
	for _, p := range oddPatterns {
		if p.MatchString(text) {
			score += 10
		}
	}
	return score
}
