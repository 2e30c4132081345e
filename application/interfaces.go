package application

import (
	"context"

	"cluesbot/application/dto"
	"cluesbot/models"
	"cluesbot/service"
)

// DiscordPoster defines the interface for posting scheduled announcements.
// This lets the application layer talk to the chat transport without a
// direct dependency on the Discord API.
type DiscordPoster interface {
	// PostLeaderboard announces a finished period's leaderboard
	PostLeaderboard(ctx context.Context, post dto.LeaderboardPostDTO) error
}

// SubmissionLedger persists scored submissions at most once per player and day
type SubmissionLedger interface {
	Save(ctx context.Context, sub *models.Submission, score models.ScoreResult, player models.Player) (service.SaveResult, error)
}

// LeaderboardQueries ranks players over a day or a range
type LeaderboardQueries interface {
	Daily(ctx context.Context, date models.PuzzleDate) (*models.Leaderboard, error)
	Range(ctx context.Context, start, end models.PuzzleDate, topN int) (*models.Leaderboard, error)
}

// StreakQueries computes streak state for a player
type StreakQueries interface {
	Streak(ctx context.Context, playerID string, today models.PuzzleDate) (*models.StreakState, error)
}

// Commentator writes a short reaction to a score
type Commentator interface {
	Comment(ctx context.Context, req service.CommentaryRequest) string
}

// Calendar supplies puzzle days in the reporting timezone
type Calendar interface {
	Today() models.PuzzleDate
	Yesterday() models.PuzzleDate
	PreviousWeek() models.DateRange
	PreviousMonth() models.DateRange
}
