package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/oddlabs/oddly/internal/article"
	"github.com/oddlabs/oddly/internal/source"
)

var (
	pullCategory string
	pullPreload  bool
	pullScores   bool
)

var pullCmd = &cobra.Command{
	Use:   "pull",
	Short: "Fetch and list odd-news articles",
	RunE:  pullAction,
}

func init() {
	pullCmd.Flags().StringVar(&pullCategory, "category", article.CategoryAll, "article category")
	pullCmd.Flags().BoolVar(&pullPreload, "preload", true, "warm the content cache for the top articles")
	pullCmd.Flags().BoolVar(&pullScores, "scores", false, "show oddness scores next to each article")
	rootCmd.AddCommand(pullCmd)
}

func pullAction(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	articles := a.service.FetchArticles(cmd.Context(), pullCategory)
	articles = article.Deduplicate(articles)

	if len(articles) == 0 {
		fmt.Println("No articles found.")
		return nil
	}

	if pullScores {
		printArticlesScored(articles)
	} else {
		printArticles(articles)
	}

	if pullPreload {
		urls := make([]string, len(articles))
		for i, art := range articles {
			urls[i] = art.URL
		}
		a.service.PreloadContent(urls)
	}

	return nil
}

func printArticles(articles []article.Article) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, a := range articles {
		fmt.Fprintf(w, "%2d.\t[%s]\t%s\t%s\t%s\n",
			i+1, a.Category, a.Title, a.Source, a.PublishedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
	fmt.Printf("\n%d articles\n", len(articles))
}

func printArticlesScored(articles []article.Article) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for i, a := range articles {
		fmt.Fprintf(w, "%2d.\t%s\t[%s]\t%s\t%s\t%s\n",
			i+1, oddnessLabel(a), a.Category, a.Title, a.Source, a.PublishedAt.Format("2006-01-02"))
	}
	_ = w.Flush()
	fmt.Printf("\n%d articles\n", len(articles))
}

// oddnessLabel renders the diagnostic oddness score of a headline.
func oddnessLabel(a article.Article) string {
	return fmt.Sprintf("%+d", source.Oddness(a.Title, a.Summary))
}
