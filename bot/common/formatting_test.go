package common

import (
	"strings"
	"testing"

	"cluesbot/models"

	"github.com/stretchr/testify/assert"
)

func TestMedal(t *testing.T) {
	assert.Equal(t, "🥇", Medal(0))
	assert.Equal(t, "🥈", Medal(1))
	assert.Equal(t, "🥉", Medal(2))
	assert.Equal(t, "4.", Medal(3))
	assert.Equal(t, "10.", Medal(9))
}

func TestFormatLeaderboardLines(t *testing.T) {
	board := &models.Leaderboard{
		Entries: []models.LeaderboardEntry{
			{PlayerID: "1", Name: "Alf", Score: 221, Difficulty: "Hard"},
			{PlayerID: "2", Name: "Bea", Score: 180},
		},
		TotalPlayers: 5,
	}

	got := FormatLeaderboardLines(board, true)
	assert.Equal(t, "🥇 Alf (Hard) — 221\n🥈 Bea — 180\n…and 3 more", got)

	got = FormatLeaderboardLines(board, false)
	assert.True(t, strings.HasPrefix(got, "🥇 Alf — 221\n"))

	assert.Empty(t, FormatLeaderboardLines(&models.Leaderboard{}, true))
	assert.Empty(t, FormatLeaderboardLines(nil, true))
}

func TestRenderLeaderboardTable(t *testing.T) {
	board := &models.Leaderboard{
		Entries: []models.LeaderboardEntry{
			{PlayerID: "1", Name: "Alexandria Montgomery-Smythe", Score: 221},
		},
		TotalPlayers: 3,
	}

	got := RenderLeaderboardTable(board)
	assert.True(t, strings.HasPrefix(got, "```\n"))
	assert.True(t, strings.HasSuffix(got, "\n```"))
	assert.Contains(t, got, "PLAYER")
	assert.Contains(t, got, "Alexandria Montgo…")
	assert.Contains(t, got, "+2 MORE")
	assert.Empty(t, RenderLeaderboardTable(&models.Leaderboard{}))
}

func TestTruncateName(t *testing.T) {
	assert.Equal(t, "Sam", TruncateName("Sam", 5))
	assert.Equal(t, "Saman…", TruncateName("Samantha", 6))
	assert.Equal(t, "🟩🟩…", TruncateName("🟩🟩🟩🟩", 3))
}
