package dto

import "cluesbot/models"

// SubmissionReplyDTO is everything the transport needs to answer a share card
type SubmissionReplyDTO struct {
	PlayerName string
	Accepted   bool
	Submission *models.Submission
	Score      models.ScoreResult

	// Populated only when Accepted
	Rank    int
	Players int
	Comment string
	Streak  *models.StreakState
}
