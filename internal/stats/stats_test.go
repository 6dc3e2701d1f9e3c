package stats

import "testing"

func TestFormatViews(t *testing.T) {
	tests := []struct {
		views int
		want  string
	}{
		{0, "0"},
		{999, "999"},
		{1200, "1.2k"},
		{9999, "10.0k"},
		{45000, "45k"},
	}
	for _, tt := range tests {
		if got := FormatViews(tt.views); got != tt.want {
			t.Errorf("FormatViews(%d) = %q, want %q", tt.views, got, tt.want)
		}
	}
}

func TestDominantReaction(t *testing.T) {
	emoji, percent, ok := DominantReaction(map[string]int{
		ReactionMindBlown: 1,
		ReactionLaugh:     3,
	})
	if !ok {
		t.Fatal("expected a dominant reaction")
	}
	if emoji != ReactionLaugh {
		t.Fatalf("emoji = %q", emoji)
	}
	if percent != 75 {
		t.Fatalf("percent = %d, want 75", percent)
	}
}

func TestDominantReactionEmpty(t *testing.T) {
	if _, _, ok := DominantReaction(nil); ok {
		t.Fatal("no reactions should report ok=false")
	}
	if _, _, ok := DominantReaction(map[string]int{ReactionSick: 0}); ok {
		t.Fatal("zero totals should report ok=false")
	}
}
