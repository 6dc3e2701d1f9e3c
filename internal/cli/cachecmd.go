package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Inspect and clear the local caches",
}

var cacheInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show article cache state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		cached, age := a.articles.Info(cmd.Context())
		if !cached {
			fmt.Println("Article cache: empty")
			return nil
		}
		fmt.Printf("Article cache: present, age %s\n", age.Round(time.Second))
		return nil
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the cached article list",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.articles.Clear(cmd.Context()); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
		fmt.Println("Article cache cleared.")
		return nil
	},
}

var cacheClearContentCmd = &cobra.Command{
	Use:   "clear-content",
	Short: "Remove all cached article text",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.close()

		n, err := a.content.Clear(cmd.Context())
		if err != nil {
			return fmt.Errorf("clear content cache: %w", err)
		}
		fmt.Printf("Cleared %d cached articles.\n", n)
		return nil
	},
}

func init() {
	cacheCmd.AddCommand(cacheInfoCmd, cacheClearCmd, cacheClearContentCmd)
	rootCmd.AddCommand(cacheCmd)
}
