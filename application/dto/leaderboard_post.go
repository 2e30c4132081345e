package dto

import "cluesbot/models"

// LeaderboardPeriod names the cadence of a scheduled leaderboard
type LeaderboardPeriod string

const (
	PeriodDaily   LeaderboardPeriod = "daily"
	PeriodWeekly  LeaderboardPeriod = "weekly"
	PeriodMonthly LeaderboardPeriod = "monthly"
	PeriodCustom  LeaderboardPeriod = "custom"
)

// LeaderboardPostDTO carries a ranked period to the transport for announcement
type LeaderboardPostDTO struct {
	Period LeaderboardPeriod
	Range  models.DateRange
	Board  *models.Leaderboard
}

// HasWinner reports whether anyone scored in the period
func (d LeaderboardPostDTO) HasWinner() bool {
	return d.Board != nil && d.Board.Winner != nil
}
