package testutil

import (
	"time"

	"cluesbot/models"

	"github.com/brianvoe/gofakeit/v7"
)

// CreateTestRecord builds a fully populated record for date and playerID
func CreateTestRecord(date models.PuzzleDate, playerID string) *models.Record {
	return &models.Record{
		PuzzleDate:           date,
		Difficulty:           "Hard",
		PlayerID:             playerID,
		Username:             "user" + playerID,
		DisplayName:          "Player " + playerID,
		TimeSeconds:          models.IntPtr(135),
		Greens:               4,
		Clues:                1,
		Retries:              0,
		QualityScore:         94,
		SpeedScore:           models.IntPtr(89),
		BaseScore:            184,
		DifficultyMultiplier: 1.2,
		TotalScore:           221,
		SubmittedAt:          time.Date(2025, 11, 3, 9, 30, 0, 0, time.UTC),
	}
}

// CreateRandomRecords builds n records for date with generated names and scores.
// The same seed always yields the same records.
func CreateRandomRecords(seed uint64, date models.PuzzleDate, n int) []*models.Record {
	faker := gofakeit.New(seed)
	records := make([]*models.Record, 0, n)
	for i := 0; i < n; i++ {
		record := CreateTestRecord(date, faker.UUID())
		record.Username = faker.Username()
		record.DisplayName = faker.Name()
		record.TimeSeconds = nil
		record.TimeBandMinutes = models.IntPtr(10)
		record.SpeedScore = nil
		record.TotalScore = faker.IntRange(1, 240)
		records = append(records, record)
	}
	return records
}
