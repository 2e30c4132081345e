package bot

import (
	"context"
	"errors"
	"testing"

	"cluesbot/application/dto"
	"cluesbot/models"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error) {
	args := m.Called(channelID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*discordgo.Message), args.Error(1)
}

func boardOf(entries ...models.LeaderboardEntry) *models.Leaderboard {
	b := &models.Leaderboard{Entries: entries, TotalPlayers: len(entries)}
	if len(entries) > 0 {
		b.Winner = &b.Entries[0]
	}
	return b
}

func TestFormatLeaderboardPost_Empty(t *testing.T) {
	daily := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodDaily,
		Range:  models.DateRange{Start: "2025-11-02", End: "2025-11-02", Label: "2025-11-02"},
		Board:  &models.Leaderboard{},
	})
	assert.Contains(t, daily, "(2025-11-02)")
	assert.Contains(t, daily, "No scores logged yesterday")

	weekly := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodWeekly,
		Range:  models.DateRange{Start: "2025-10-27", End: "2025-11-02"},
	})
	assert.Contains(t, weekly, "(2025-10-27 → 2025-11-02)")
	assert.Contains(t, weekly, "No scores logged last week")

	monthly := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodMonthly,
		Range:  models.DateRange{Start: "2025-10-01", End: "2025-10-31", Label: "October 2025"},
	})
	assert.Contains(t, monthly, "October 2025")
	assert.Contains(t, monthly, "No scores logged last month")
}

func TestFormatLeaderboardPost_Winners(t *testing.T) {
	board := boardOf(
		models.LeaderboardEntry{PlayerID: "1", Name: "Alf", Score: 221, Difficulty: "Hard"},
		models.LeaderboardEntry{PlayerID: "2", Name: "Bea", Score: 180, Difficulty: "Easy"},
	)

	daily := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodDaily,
		Range:  models.DateRange{Start: "2025-11-02", End: "2025-11-02"},
		Board:  board,
	})
	assert.Equal(t, "🌅 Daily Clues by Sam — **Yesterday's Winner**\n"+
		"📅 2025-11-02\n\n"+
		"🏆 Winner: **Alf** — 221\n\n"+
		"📋 Leaderboard:\n🥇 Alf (Hard) — 221\n🥈 Bea (Easy) — 180\n\n"+
		"🧠 Back at it today, team!", daily)

	weekly := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodWeekly,
		Range:  models.DateRange{Start: "2025-10-27", End: "2025-11-02"},
		Board:  board,
	})
	assert.Contains(t, weekly, "🏆 Champion: **Alf** — 221")
	assert.Contains(t, weekly, "🥈 Bea — 180")

	monthly := FormatLeaderboardPost(dto.LeaderboardPostDTO{
		Period: dto.PeriodMonthly,
		Range:  models.DateRange{Label: "October 2025"},
		Board:  board,
	})
	assert.Contains(t, monthly, "**October 2025 Winner**")
}

func TestChannelPoster_PostLeaderboard(t *testing.T) {
	post := dto.LeaderboardPostDTO{
		Period: dto.PeriodWeekly,
		Range:  models.DateRange{Start: "2025-10-27", End: "2025-11-02"},
	}

	t.Run("sends to configured channel", func(t *testing.T) {
		sender := new(mockSender)
		sender.On("ChannelMessageSend", "announce", FormatLeaderboardPost(post)).Return(&discordgo.Message{ID: "m1"}, nil)

		poster := NewChannelPoster(sender, "announce")
		require.NoError(t, poster.PostLeaderboard(context.Background(), post))
		sender.AssertExpectations(t)
	})

	t.Run("wraps send failure", func(t *testing.T) {
		sender := new(mockSender)
		sender.On("ChannelMessageSend", "announce", mock.Anything).Return(nil, errors.New("rate limited"))

		poster := NewChannelPoster(sender, "announce")
		err := poster.PostLeaderboard(context.Background(), post)
		assert.ErrorContains(t, err, "failed to post weekly leaderboard")
	})
}
