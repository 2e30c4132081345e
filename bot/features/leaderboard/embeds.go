package leaderboard

import (
	"fmt"

	"cluesbot/bot/common"
	"cluesbot/models"

	"github.com/bwmarrin/discordgo"
)

const embedColor = 0x2ecc71

// BuildDailyEmbed renders the top n of one day's leaderboard; n <= 0 shows everyone
func BuildDailyEmbed(date models.PuzzleDate, board *models.Leaderboard, n int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: fmt.Sprintf("📅 Clues by Sam — Today (%s)", date),
		Color: embedColor,
	}
	if board.IsEmpty() {
		embed.Description = "No scores logged yet."
		return embed
	}

	embed.Description = fmt.Sprintf("Players: %d\n\n%s", board.TotalPlayers, common.FormatLeaderboardLines(board.Top(n), true))
	return embed
}

// BuildRangeEmbed renders a multi-day leaderboard as a table
func BuildRangeEmbed(title string, period models.DateRange, board *models.Leaderboard) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "Clues by Sam — " + title,
		Color: embedColor,
		Footer: &discordgo.MessageEmbedFooter{
			Text: period.Label,
		},
	}
	if board.IsEmpty() {
		embed.Description = "No scores yet."
		return embed
	}

	embed.Description = fmt.Sprintf("👑 %s leads with %d\n%s", board.Winner.Name, board.Winner.Score, common.RenderLeaderboardTable(board))
	return embed
}
