package cmd

import (
	"github.com/spf13/cobra"
)

var version = "dev"

// NewRootCmd builds the cluesbot command tree
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cluesbot",
		Short:         "cluesbot - Clues by Sam scores, leaderboards and streaks for Discord",
		Long:          "cluesbot reads Clues by Sam share cards from a Discord channel, scores them, keeps one result per player per day and posts daily, weekly and monthly leaderboards.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context())
		},
	}

	root.AddCommand(newRunCmd())
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newScoreCmd())
	return root
}

func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Start the Discord bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return Run(cmd.Context())
		},
	}
}
