package cli

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show view and reaction stats for the current articles",
	RunE:  statsAction,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func statsAction(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.client == nil {
		return errors.New("stats require api.base_url to be configured")
	}

	ctx := cmd.Context()
	articles := article.Deduplicate(a.service.FetchArticles(ctx, article.CategoryAll))
	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	ids := make([]string, len(articles))
	for i, art := range articles {
		ids[i] = art.ID
	}

	byID, err := a.client.FetchStats(ctx, ids)
	if err != nil {
		return fmt.Errorf("fetch stats: %w", err)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, art := range articles {
		s, ok := byID[art.ID]
		if !ok {
			continue
		}
		line := fmt.Sprintf("%s\t%s views", art.Title, stats.FormatViews(s.Views))
		if emoji, percent, ok := stats.DominantReaction(s.Reactions); ok {
			line += fmt.Sprintf("\t%s %d%%", emoji, percent)
		}
		fmt.Fprintln(w, line)
	}
	return w.Flush()
}
