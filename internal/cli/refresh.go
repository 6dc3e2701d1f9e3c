package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oddlabs/oddly/internal/article"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a fresh fetch, bypassing caches",
	RunE:  refreshAction,
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}

func refreshAction(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()

	// Refresh never errors; a failure shows up as the same stale set.
	before := a.service.FetchArticles(ctx, article.CategoryAll)
	after := a.service.Refresh(ctx)
	after = article.Deduplicate(after)

	printArticles(after)
	if sameArticleSet(before, after) {
		fmt.Println("(refresh returned no new data; showing cached)")
	}
	return nil
}

func sameArticleSet(a, b []article.Article) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]bool, len(a))
	for _, art := range a {
		seen[art.ID] = true
	}
	for _, art := range b {
		if !seen[art.ID] {
			return false
		}
	}
	return true
}
