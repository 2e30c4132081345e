package bot

import (
	"context"
	"fmt"
	"strings"

	"cluesbot/application/dto"
	"cluesbot/bot/common"

	"github.com/bwmarrin/discordgo"
	log "github.com/sirupsen/logrus"
)

// ChannelSender is the part of a discordgo session the poster needs
type ChannelSender interface {
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// ChannelPoster announces scheduled leaderboards in a fixed channel
type ChannelPoster struct {
	sender    ChannelSender
	channelID string
}

// NewChannelPoster creates a poster that writes to channelID
func NewChannelPoster(sender ChannelSender, channelID string) *ChannelPoster {
	return &ChannelPoster{
		sender:    sender,
		channelID: channelID,
	}
}

// PostLeaderboard implements application.DiscordPoster
func (p *ChannelPoster) PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error {
	content := FormatLeaderboardPost(post)
	if _, err := p.sender.ChannelMessageSend(p.channelID, content, discordgo.WithContext(ctx)); err != nil {
		return fmt.Errorf("failed to post %s leaderboard: %w", post.Period, err)
	}

	log.WithFields(log.Fields{
		"channel_id": p.channelID,
		"period":     post.Period,
		"start":      post.Range.Start,
		"end":        post.Range.End,
	}).Info("Posted scheduled leaderboard")
	return nil
}

// FormatLeaderboardPost renders the announcement for a finished period
func FormatLeaderboardPost(post dto.LeaderboardPostDTO) string {
	r := post.Range

	if !post.HasWinner() {
		switch post.Period {
		case dto.PeriodDaily:
			return fmt.Sprintf("🌅 **Daily Clues by Sam** (%s)\n\nNo scores logged yesterday. Who's breaking the streak today? 😏", r.Start)
		case dto.PeriodWeekly:
			return fmt.Sprintf("📆 Weekly Clues by Sam (%s → %s)\n\nNo scores logged last week. Fresh start! ✨", r.Start, r.End)
		case dto.PeriodMonthly:
			return fmt.Sprintf("🗓️ Monthly Clues by Sam — %s\n\nNo scores logged last month. Let's change that! 💪", r.Label)
		default:
			return fmt.Sprintf("📊 Clues by Sam (%s)\n\nNo scores yet.", r.Label)
		}
	}

	winner := post.Board.Winner
	var b strings.Builder
	switch post.Period {
	case dto.PeriodDaily:
		b.WriteString("🌅 Daily Clues by Sam — **Yesterday's Winner**\n")
		fmt.Fprintf(&b, "📅 %s\n\n", r.Start)
		fmt.Fprintf(&b, "🏆 Winner: **%s** — %d\n\n", winner.Name, winner.Score)
		fmt.Fprintf(&b, "📋 Leaderboard:\n%s\n\n", common.FormatLeaderboardLines(post.Board, true))
		b.WriteString("🧠 Back at it today, team!")
	case dto.PeriodWeekly:
		b.WriteString("📆 Weekly Clues by Sam — **Last Week's Champion**\n")
		fmt.Fprintf(&b, "🗓️ %s → %s\n\n", r.Start, r.End)
		fmt.Fprintf(&b, "🏆 Champion: **%s** — %d\n\n", winner.Name, winner.Score)
		fmt.Fprintf(&b, "📋 Top 10:\n%s\n\n", common.FormatLeaderboardLines(post.Board, false))
		b.WriteString("🔥 New week, new rivalry.")
	case dto.PeriodMonthly:
		fmt.Fprintf(&b, "🗓️ Monthly Clues by Sam — **%s Winner**\n", r.Label)
		fmt.Fprintf(&b, "🏆 Winner: **%s** — %d\n\n", winner.Name, winner.Score)
		fmt.Fprintf(&b, "📋 Top 10:\n%s\n\n", common.FormatLeaderboardLines(post.Board, false))
		b.WriteString("🎉 New month starts now. Who's taking the crown next?")
	default:
		fmt.Fprintf(&b, "📊 Clues by Sam (%s)\n\n", r.Label)
		b.WriteString(common.FormatLeaderboardLines(post.Board, false))
	}
	return b.String()
}
