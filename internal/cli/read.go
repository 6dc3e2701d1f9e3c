package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var readCmd = &cobra.Command{
	Use:   "read <url>",
	Short: "Print the full text of an article, cached when possible",
	Args:  cobra.ExactArgs(1),
	RunE:  readAction,
}

func init() {
	rootCmd.AddCommand(readCmd)
}

func readAction(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	articleURL := args[0]

	content := a.content.Get(ctx, articleURL)
	if content == "" {
		if a.fetcher == nil {
			return errors.New("no content fetcher configured")
		}
		content, err = a.fetcher.FetchContent(ctx, articleURL)
		if err != nil {
			return fmt.Errorf("fetch content: %w", err)
		}
		a.content.Set(ctx, articleURL, content)
	}

	fmt.Println(content)
	return nil
}
