package cli

import (
	"testing"

	"github.com/oddlabs/oddly/internal/article"
)

func TestVersionNotEmpty(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
}

func TestExecuteVersion(t *testing.T) {
	rootCmd.SetArgs([]string{"version"})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("version command failed: %v", err)
	}
}

func TestSameArticleSet(t *testing.T) {
	one := []article.Article{{ID: "1"}, {ID: "2"}}
	two := []article.Article{{ID: "2"}, {ID: "1"}}
	three := []article.Article{{ID: "1"}, {ID: "3"}}

	if !sameArticleSet(one, two) {
		t.Error("order should not matter")
	}
	if sameArticleSet(one, three) {
		t.Error("different IDs should not match")
	}
	if sameArticleSet(one, one[:1]) {
		t.Error("different lengths should not match")
	}
	if !sameArticleSet(nil, nil) {
		t.Error("two empty sets should match")
	}
}
