package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"cluesbot/application/dto"
	"cluesbot/events"
	"cluesbot/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var workerCalendar = stubCalendar{
	today: "2025-12-01",
	week:  models.DateRange{Start: "2025-11-24", End: "2025-11-30", Label: "2025-11-24 → 2025-11-30"},
	month: models.DateRange{Start: "2025-11-01", End: "2025-11-30", Label: "November 2025"},
}

func TestLeaderboardWorker_PostDaily(t *testing.T) {
	ctx := context.Background()
	boards := new(mockLeaderboards)
	poster := new(mockPoster)
	bus := events.NewBus()

	posted := make(chan events.LeaderboardPostedEvent, 1)
	bus.Subscribe(events.EventTypeLeaderboardPosted, func(ctx context.Context, event events.Event) {
		posted <- event.(events.LeaderboardPostedEvent)
	})

	winner := models.LeaderboardEntry{PlayerID: "1", Name: "Alf", Score: 200}
	board := &models.Leaderboard{
		Start:        "2025-11-30",
		End:          "2025-11-30",
		Entries:      []models.LeaderboardEntry{winner},
		Winner:       &winner,
		TotalPlayers: 1,
	}
	boards.On("Daily", ctx, models.PuzzleDate("2025-11-30")).Return(board, nil)
	poster.On("PostLeaderboard", ctx, mock.MatchedBy(func(post dto.LeaderboardPostDTO) bool {
		return post.Period == dto.PeriodDaily && post.HasWinner() && post.Range.Start == "2025-11-30"
	})).Return(nil)

	worker := NewLeaderboardWorker(boards, workerCalendar, poster, bus)
	require.NoError(t, worker.PostDaily(ctx))

	select {
	case event := <-posted:
		assert.Equal(t, "daily", event.Period)
		assert.Equal(t, "1", event.WinnerID)
		assert.Equal(t, 1, event.Players)
	case <-time.After(2 * time.Second):
		t.Fatal("LeaderboardPostedEvent not emitted")
	}
	poster.AssertExpectations(t)
}

func TestLeaderboardWorker_PostWeeklyAndMonthly(t *testing.T) {
	ctx := context.Background()
	boards := new(mockLeaderboards)
	poster := new(mockPoster)

	empty := &models.Leaderboard{}
	boards.On("Range", ctx, models.PuzzleDate("2025-11-24"), models.PuzzleDate("2025-11-30"), 10).Return(empty, nil).Once()
	boards.On("Range", ctx, models.PuzzleDate("2025-11-01"), models.PuzzleDate("2025-11-30"), 10).Return(empty, nil).Once()
	poster.On("PostLeaderboard", ctx, mock.MatchedBy(func(post dto.LeaderboardPostDTO) bool {
		return post.Period == dto.PeriodWeekly && !post.HasWinner()
	})).Return(nil).Once()
	poster.On("PostLeaderboard", ctx, mock.MatchedBy(func(post dto.LeaderboardPostDTO) bool {
		return post.Period == dto.PeriodMonthly && post.Range.Label == "November 2025"
	})).Return(nil).Once()

	worker := NewLeaderboardWorker(boards, workerCalendar, poster, nil)
	require.NoError(t, worker.PostWeekly(ctx))
	require.NoError(t, worker.PostMonthly(ctx))

	boards.AssertExpectations(t)
	poster.AssertExpectations(t)
}

func TestLeaderboardWorker_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("store failure", func(t *testing.T) {
		boards := new(mockLeaderboards)
		poster := new(mockPoster)
		boards.On("Daily", ctx, mock.Anything).Return(nil, errors.New("down"))

		err := NewLeaderboardWorker(boards, workerCalendar, poster, nil).PostDaily(ctx)
		assert.Error(t, err)
		poster.AssertNotCalled(t, "PostLeaderboard", mock.Anything, mock.Anything)
	})

	t.Run("post failure", func(t *testing.T) {
		boards := new(mockLeaderboards)
		poster := new(mockPoster)
		boards.On("Daily", ctx, mock.Anything).Return(&models.Leaderboard{}, nil)
		poster.On("PostLeaderboard", ctx, mock.Anything).Return(errors.New("missing access"))

		err := NewLeaderboardWorker(boards, workerCalendar, poster, nil).PostDaily(ctx)
		assert.ErrorContains(t, err, "missing access")
	})
}

func TestLeaderboardWorker_StartAndStop(t *testing.T) {
	worker := NewLeaderboardWorker(new(mockLeaderboards), workerCalendar, new(mockPoster), nil)

	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	stop, err := worker.Start(context.Background(), london)
	require.NoError(t, err)
	stop()
}
