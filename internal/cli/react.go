package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/oddlabs/oddly/internal/stats"
)

var reactCmd = &cobra.Command{
	Use:   "react <id> <emoji>",
	Short: "Send a reaction for an article",
	Args:  cobra.ExactArgs(2),
	RunE:  reactAction,
}

func init() {
	rootCmd.AddCommand(reactCmd)
}

func reactAction(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	if a.client == nil {
		return errors.New("reactions require api.base_url to be configured")
	}

	id, emoji := args[0], args[1]
	if !validReaction(emoji) {
		return fmt.Errorf("unknown reaction %q (use %s, %s or %s)", emoji,
			stats.ReactionMindBlown, stats.ReactionLaugh, stats.ReactionSick)
	}

	if err := a.client.TrackEvent(cmd.Context(), id, "reaction", emoji); err != nil {
		return fmt.Errorf("send reaction: %w", err)
	}
	fmt.Printf("Reacted %s to article %s.\n", emoji, id)
	return nil
}

func validReaction(emoji string) bool {
	switch emoji {
	case stats.ReactionMindBlown, stats.ReactionLaugh, stats.ReactionSick:
		return true
	}
	return false
}
