package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"cluesbot/application"
	"cluesbot/models"
	"cluesbot/service"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newScoreCmd() *cobra.Command {
	var multipliers string

	cmd := &cobra.Command{
		Use:   "score [file]",
		Short: "Parse and score a share card from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return fmt.Errorf("failed to open %s: %w", args[0], err)
				}
				defer f.Close()
				in = f
			}

			text, err := io.ReadAll(in)
			if err != nil {
				return fmt.Errorf("failed to read share card: %w", err)
			}

			profile, err := service.DifficultyTableByName(multipliers)
			if err != nil {
				return err
			}

			sub, ok := application.ParseShareCard(string(text))
			if !ok {
				return fmt.Errorf("input is not a Clues by Sam share card")
			}
			score := service.NewScoringEngine(profile).Score(sub)

			fmt.Fprintln(cmd.OutOrStdout(), renderScore(sub, score))
			return nil
		},
	}
	cmd.Flags().StringVar(&multipliers, "multipliers", "scoring", "difficulty multiplier profile: scoring or published")
	return cmd
}

func renderScore(sub *models.Submission, score models.ScoreResult) string {
	t := table.NewWriter()
	t.SetStyle(table.StyleLight)

	difficulty := sub.DifficultyLabel()
	if difficulty == "" {
		difficulty = "unknown"
	}
	speed := "n/a"
	if score.SpeedScore != nil {
		speed = fmt.Sprintf("%d", *score.SpeedScore)
	}

	t.AppendRows([]table.Row{
		{"Puzzle date", sub.PuzzleDate},
		{"Difficulty", difficulty},
		{"Time", sub.TimeText()},
		{"Tiles", fmt.Sprintf("🟩 %d  🟡 %d  🟨 %d", sub.Tiles.Green, sub.Tiles.Clue, sub.Tiles.Retry)},
		{"Quality", score.QualityScore},
		{"Speed", speed},
		{"Base", score.Base},
		{"Multiplier", fmt.Sprintf("%.2f", score.DifficultyMultiplier)},
	})
	t.AppendFooter(table.Row{"Total", score.Total})

	out := t.Render()
	if len(score.Notes) > 0 {
		out += "\n" + strings.Join(score.Notes, "\n")
	}
	return out
}
