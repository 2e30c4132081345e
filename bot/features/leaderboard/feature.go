package leaderboard

import (
	"context"

	"cluesbot/bot/common"
	"cluesbot/models"

	"github.com/bwmarrin/discordgo"
)

const commandTopN = 10

// Queries ranks players over a day or a range
type Queries interface {
	Daily(ctx context.Context, date models.PuzzleDate) (*models.Leaderboard, error)
	Range(ctx context.Context, start, end models.PuzzleDate, topN int) (*models.Leaderboard, error)
}

// Calendar resolves reporting periods in the reporting timezone
type Calendar interface {
	Today() models.PuzzleDate
	CurrentWeek() models.DateRange
	CurrentMonth() models.DateRange
	ParseRange(startInput, endInput string) (models.DateRange, error)
}

// Feature serves the leaderboard subcommands of /clues
type Feature struct {
	queries  Queries
	calendar Calendar
}

// NewFeature creates a new leaderboard feature instance
func NewFeature(queries Queries, calendar Calendar) *Feature {
	return &Feature{
		queries:  queries,
		calendar: calendar,
	}
}

// HandleSubcommand handles today, week, month and range
func (f *Feature) HandleSubcommand(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	switch sub.Name {
	case "today":
		f.handleToday(s, i)
	case "week":
		f.handlePeriod(s, i, "📆 This Week", f.calendar.CurrentWeek())
	case "month":
		f.handlePeriod(s, i, "🗓️ This Month", f.calendar.CurrentMonth())
	case "range":
		f.handleRange(s, i, sub.Options)
	default:
		common.RespondWithError(s, i, "Unknown subcommand")
	}
}
