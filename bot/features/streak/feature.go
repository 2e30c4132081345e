package streak

import (
	"context"
	"fmt"
	"strings"

	"cluesbot/bot/common"
	"cluesbot/models"
	"cluesbot/service"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// Queries computes streak state for a player
type Queries interface {
	Streak(ctx context.Context, playerID string, today models.PuzzleDate) (*models.StreakState, error)
}

// Calendar supplies today's puzzle day
type Calendar interface {
	Today() models.PuzzleDate
}

// Feature serves /clues streak
type Feature struct {
	queries  Queries
	calendar Calendar
}

// NewFeature creates a new streak feature instance
func NewFeature(queries Queries, calendar Calendar) *Feature {
	return &Feature{
		queries:  queries,
		calendar: calendar,
	}
}

// HandleSubcommand reports the streak of the chosen user, or of the caller
func (f *Feature) HandleSubcommand(s *discordgo.Session, i *discordgo.InteractionCreate, sub *discordgo.ApplicationCommandInteractionDataOption) {
	target := common.InvokingUser(i)
	for _, opt := range sub.Options {
		if opt.Name == "user" {
			if u := opt.UserValue(nil); u != nil {
				target = u
			}
		}
	}
	if target == nil {
		common.RespondWithError(s, i, "Couldn't work out who to look up.")
		return
	}

	// UserValue(nil) only carries the ID; names come from the resolved data
	if resolved := i.ApplicationCommandData().Resolved; resolved != nil {
		if u, ok := resolved.Users[target.ID]; ok {
			target = u
		}
	}

	if err := common.DeferResponse(s, i, false); err != nil {
		log.WithError(err).Error("Failed to defer /clues streak")
		return
	}

	content, err := f.streakMessage(context.Background(), target)
	if err != nil {
		log.WithError(err).WithField("player_id", target.ID).Error("Failed to compute streak")
		common.FollowUpWithError(s, i, "Unable to load streaks. Please try again.")
		return
	}

	common.FollowUpWithContent(s, i, content)
}

func (f *Feature) streakMessage(ctx context.Context, target *discordgo.User) (string, error) {
	state, err := f.queries.Streak(ctx, target.ID, f.calendar.Today())
	if err != nil {
		return "", err
	}
	return FormatStreak(models.DisplayLabel(target.ID, target.Username, target.GlobalName), state), nil
}

// FormatStreak renders a streak summary
func FormatStreak(name string, state *models.StreakState) string {
	if state == nil || state.LastPlayedDate == nil {
		return fmt.Sprintf("🧩 %s hasn't logged a Clues by Sam yet.", name)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "🧩 **%s**\n", name)
	current := fmt.Sprintf("Current streak: **%d** %s", state.CurrentStreak, service.StreakFlair(state.CurrentStreak))
	b.WriteString(strings.TrimSpace(current) + "\n")
	fmt.Fprintf(&b, "Best streak: **%d**\n", state.BestStreak)
	if state.PlayedToday {
		b.WriteString("✅ Played today")
	} else {
		fmt.Fprintf(&b, "Last played: %s", *state.LastPlayedDate)
	}
	return b.String()
}
