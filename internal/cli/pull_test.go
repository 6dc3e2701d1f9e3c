package cli

import (
	"strings"
	"testing"

	"github.com/oddlabs/oddly/internal/article"
)

func TestOddnessLabel(t *testing.T) {
	boring := article.Article{Title: "Minister announces budget"}
	if got := oddnessLabel(boring); got != "-100" {
		t.Fatalf("boring label = %q, want -100", got)
	}

	odd := article.Article{Title: "Raccoon goes viral in bizarre escape"}
	if got := oddnessLabel(odd); !strings.HasPrefix(got, "+") {
		t.Fatalf("odd story label = %q, want a positive score", got)
	}
}
