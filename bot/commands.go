package bot

import (
	"fmt"

	"github.com/bwmarrin/discordgo"
)

const cluesCommand = "clues"

// Commands returns the slash command definitions served by the bot
func Commands() []*discordgo.ApplicationCommand {
	return []*discordgo.ApplicationCommand{
		{
			Name:        cluesCommand,
			Description: "Clues by Sam leaderboards and streaks",
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "today",
					Description: "Show today's leaderboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "week",
					Description: "Show this week's leaderboard (Monday to Sunday)",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "month",
					Description: "Show this month's leaderboard",
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "range",
					Description: "Show the leaderboard for a custom date range",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "start",
							Description: "First day, e.g. 2025-11-03 or \"last monday\"",
							Required:    true,
						},
						{
							Type:        discordgo.ApplicationCommandOptionString,
							Name:        "end",
							Description: "Last day, e.g. 2025-11-09 or \"yesterday\"",
							Required:    true,
						},
					},
				},
				{
					Type:        discordgo.ApplicationCommandOptionSubCommand,
					Name:        "streak",
					Description: "Show a player's daily streak",
					Options: []*discordgo.ApplicationCommandOption{
						{
							Type:        discordgo.ApplicationCommandOptionUser,
							Name:        "user",
							Description: "Player to check (defaults to you)",
							Required:    false,
						},
					},
				},
			},
		},
	}
}

// registerCommands registers all slash commands with Discord
func (b *Bot) registerCommands() error {
	for _, cmd := range Commands() {
		_, err := b.session.ApplicationCommandCreate(b.session.State.User.ID, b.config.GuildID, cmd)
		if err != nil {
			return fmt.Errorf("cannot create '%s' command: %w", cmd.Name, err)
		}
	}
	return nil
}
