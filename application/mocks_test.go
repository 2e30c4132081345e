package application

import (
	"context"

	"cluesbot/application/dto"
	"cluesbot/models"
	"cluesbot/service"

	"github.com/stretchr/testify/mock"
)

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Save(ctx context.Context, sub *models.Submission, score models.ScoreResult, player models.Player) (service.SaveResult, error) {
	args := m.Called(ctx, sub, score, player)
	return args.Get(0).(service.SaveResult), args.Error(1)
}

type mockLeaderboards struct {
	mock.Mock
}

func (m *mockLeaderboards) Daily(ctx context.Context, date models.PuzzleDate) (*models.Leaderboard, error) {
	args := m.Called(ctx, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

func (m *mockLeaderboards) Range(ctx context.Context, start, end models.PuzzleDate, topN int) (*models.Leaderboard, error) {
	args := m.Called(ctx, start, end, topN)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Leaderboard), args.Error(1)
}

type mockStreaks struct {
	mock.Mock
}

func (m *mockStreaks) Streak(ctx context.Context, playerID string, today models.PuzzleDate) (*models.StreakState, error) {
	args := m.Called(ctx, playerID, today)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.StreakState), args.Error(1)
}

type mockCommentator struct {
	mock.Mock
}

func (m *mockCommentator) Comment(ctx context.Context, req service.CommentaryRequest) string {
	args := m.Called(ctx, req)
	return args.String(0)
}

type mockPoster struct {
	mock.Mock
}

func (m *mockPoster) PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

// stubCalendar pins the reporting calendar to fixed values
type stubCalendar struct {
	today models.PuzzleDate
	week  models.DateRange
	month models.DateRange
}

func (c stubCalendar) Today() models.PuzzleDate { return c.today }
func (c stubCalendar) Yesterday() models.PuzzleDate { return c.today.AddDays(-1) }
func (c stubCalendar) PreviousWeek() models.DateRange { return c.week }
func (c stubCalendar) PreviousMonth() models.DateRange { return c.month }
