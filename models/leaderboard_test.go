package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLeaderboard_Top(t *testing.T) {
	board := &Leaderboard{
		Entries:      []LeaderboardEntry{{PlayerID: "1"}, {PlayerID: "2"}, {PlayerID: "3"}},
		TotalPlayers: 3,
	}

	top := board.Top(2)
	assert.Len(t, top.Entries, 2)
	assert.Equal(t, 3, top.TotalPlayers)
	assert.Len(t, board.Entries, 3)

	assert.Same(t, board, board.Top(0))
	assert.Same(t, board, board.Top(5))
	assert.Nil(t, (*Leaderboard)(nil).Top(2))
}
