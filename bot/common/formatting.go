package common

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"cluesbot/models"

	"github.com/jedib0t/go-pretty/v6/table"
)

const maxTableNameRunes = 18

// Medal returns the podium glyph for a zero-based position, or "N." below the podium
func Medal(position int) string {
	switch position {
	case 0:
		return "🥇"
	case 1:
		return "🥈"
	case 2:
		return "🥉"
	default:
		return strconv.Itoa(position+1) + "."
	}
}

// FormatLeaderboardLines renders entries one per line, with a trailing
// "…and N more" when the board was truncated
func FormatLeaderboardLines(board *models.Leaderboard, showDifficulty bool) string {
	if board == nil || board.IsEmpty() {
		return ""
	}

	lines := make([]string, 0, len(board.Entries)+1)
	for i, e := range board.Entries {
		diff := ""
		if showDifficulty && e.Difficulty != "" {
			diff = " (" + e.Difficulty + ")"
		}
		lines = append(lines, fmt.Sprintf("%s %s%s — %d", Medal(i), e.Name, diff, e.Score))
	}

	if more := board.TotalPlayers - len(board.Entries); more > 0 {
		lines = append(lines, fmt.Sprintf("…and %d more", more))
	}
	return strings.Join(lines, "\n")
}

// RenderLeaderboardTable renders a fixed-width table wrapped in a code block
func RenderLeaderboardTable(board *models.Leaderboard) string {
	if board == nil || board.IsEmpty() {
		return ""
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Player", "Score"})
	for i, e := range board.Entries {
		t.AppendRow(table.Row{i + 1, TruncateName(e.Name, maxTableNameRunes), e.Score})
	}
	if more := board.TotalPlayers - len(board.Entries); more > 0 {
		t.AppendFooter(table.Row{"", fmt.Sprintf("+%d more", more), ""})
	}

	return "```\n" + t.Render() + "\n```"
}

// TruncateName shortens name to at most max runes, marking the cut with an ellipsis
func TruncateName(name string, max int) string {
	if utf8.RuneCountInString(name) <= max {
		return name
	}
	runes := []rune(name)
	return string(runes[:max-1]) + "…"
}
