package leaderboard

import (
	"context"

	"cluesbot/bot/common"
	"cluesbot/models"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

func (f *Feature) handleToday(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).Error("Failed to defer /clues today")
		return
	}

	today := f.calendar.Today()
	board, err := f.queries.Daily(context.Background(), today)
	if err != nil {
		log.WithError(err).WithField("date", today).Error("Failed to build daily leaderboard")
		common.FollowUpWithError(s, i, "Unable to load today's scores. Please try again.")
		return
	}

	common.FollowUpWithEmbed(s, i, BuildDailyEmbed(today, board, commandTopN))
}

func (f *Feature) handlePeriod(s *discordgo.Session, i *discordgo.InteractionCreate, title string, period models.DateRange) {
	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).WithField("period", period.Label).Error("Failed to defer leaderboard command")
		return
	}

	board, err := f.queries.Range(context.Background(), period.Start, period.End, commandTopN)
	if err != nil {
		log.WithError(err).WithFields(log.Fields{
			"start": period.Start,
			"end":   period.End,
		}).Error("Failed to build range leaderboard")
		common.FollowUpWithError(s, i, "Unable to load the leaderboard. Please try again.")
		return
	}

	common.FollowUpWithEmbed(s, i, BuildRangeEmbed(title, period, board))
}

func (f *Feature) handleRange(s *discordgo.Session, i *discordgo.InteractionCreate, options []*discordgo.ApplicationCommandInteractionDataOption) {
	var startInput, endInput string
	for _, opt := range options {
		switch opt.Name {
		case "start":
			startInput = opt.StringValue()
		case "end":
			endInput = opt.StringValue()
		}
	}

	period, err := f.calendar.ParseRange(startInput, endInput)
	if err != nil {
		common.RespondWithError(s, i, "I couldn't read those dates. Try YYYY-MM-DD or something like \"last monday\".")
		return
	}

	f.handlePeriod(s, i, "📊 Custom Range", period)
}
