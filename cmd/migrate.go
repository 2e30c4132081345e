package cmd

import (
	"fmt"
	"os"
	"strconv"

	"cluesbot/database"

	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	var databaseURL string

	resolveURL := func() (string, error) {
		if databaseURL != "" {
			return databaseURL, nil
		}
		base := os.Getenv("DATABASE_URL")
		if base == "" {
			return "", fmt.Errorf("DATABASE_URL is required (or pass --database-url)")
		}
		return database.ConstructDatabaseURL(base, os.Getenv("DATABASE_NAME")), nil
	}

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the submissions schema",
	}
	cmd.PersistentFlags().StringVar(&databaseURL, "database-url", "", "Postgres URL (defaults to DATABASE_URL + DATABASE_NAME)")

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			return database.MigrateUp(url)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (default 1 step)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			steps := "1"
			if len(args) == 1 {
				steps = args[0]
			}
			return database.MigrateDown(url, steps)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show the current schema version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			url, err := resolveURL()
			if err != nil {
				return err
			}
			status, err := database.MigrateStatus(url)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !status.Applied {
				fmt.Fprintln(out, "No migrations applied")
				return nil
			}
			state := "clean"
			if status.Dirty {
				state = "dirty"
			}
			fmt.Fprintf(out, "Version %s (%s)\n", strconv.FormatUint(uint64(status.Version), 10), state)
			return nil
		},
	})

	return cmd
}
