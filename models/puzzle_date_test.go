package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPuzzleDate(t *testing.T) {
	tests := []struct {
		name        string
		year        int
		month       time.Month
		day         int
		want        PuzzleDate
		expectError bool
	}{
		{name: "regular date", year: 2025, month: time.November, day: 3, want: "2025-11-03"},
		{name: "leap day", year: 2024, month: time.February, day: 29, want: "2024-02-29"},
		{name: "non-leap february 29", year: 2025, month: time.February, day: 29, expectError: true},
		{name: "february 31", year: 2025, month: time.February, day: 31, expectError: true},
		{name: "day zero", year: 2025, month: time.January, day: 0, expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewPuzzleDate(tt.year, tt.month, tt.day)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPuzzleDate_AddDays(t *testing.T) {
	assert.Equal(t, PuzzleDate("2025-01-01"), PuzzleDate("2024-12-31").AddDays(1))
	assert.Equal(t, PuzzleDate("2024-02-29"), PuzzleDate("2024-03-01").AddDays(-1))
	// Across the UK clocks-go-back weekend
	assert.Equal(t, PuzzleDate("2025-10-27"), PuzzleDate("2025-10-26").AddDays(1))
	assert.Equal(t, PuzzleDate("garbage"), PuzzleDate("garbage").AddDays(1))
}

func TestPuzzleDateOf(t *testing.T) {
	london, err := time.LoadLocation("Europe/London")
	require.NoError(t, err)

	// 23:30 UTC in summer is already the next day in London
	instant := time.Date(2025, time.June, 10, 23, 30, 0, 0, time.UTC)
	assert.Equal(t, PuzzleDate("2025-06-11"), PuzzleDateOf(instant, london))
	assert.Equal(t, PuzzleDate("2025-06-10"), PuzzleDateOf(instant, time.UTC))
}

func TestPuzzleDate_Between(t *testing.T) {
	start, end := PuzzleDate("2025-11-01"), PuzzleDate("2025-11-30")

	assert.True(t, PuzzleDate("2025-11-01").Between(start, end))
	assert.True(t, PuzzleDate("2025-11-30").Between(start, end))
	assert.False(t, PuzzleDate("2025-12-01").Between(start, end))
	assert.False(t, PuzzleDate("2025-10-31").Between(start, end))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Sam", DisplayLabel("42", "sam_user", "Sam"))
	assert.Equal(t, "sam_user", DisplayLabel("42", "sam_user", ""))
	assert.Equal(t, "User 42", DisplayLabel("42", "", ""))
}

func TestNewSubmission(t *testing.T) {
	t.Run("valid submission", func(t *testing.T) {
		sub, err := NewSubmission("2025-11-03", nil, IntPtr(135), nil, NewTiles(4, 1, 0), Grid{Rows: 1})
		require.NoError(t, err)
		assert.Equal(t, 5, sub.Tiles.Total)
		assert.Equal(t, "2:15", sub.TimeText())
	})

	t.Run("missing date", func(t *testing.T) {
		_, err := NewSubmission("", nil, nil, nil, NewTiles(1, 0, 0), Grid{Rows: 1})
		assert.Error(t, err)
	})

	t.Run("no tiles", func(t *testing.T) {
		_, err := NewSubmission("2025-11-03", nil, nil, nil, NewTiles(0, 0, 0), Grid{})
		assert.ErrorIs(t, err, ErrEmptyGrid)
	})

	t.Run("inconsistent total", func(t *testing.T) {
		_, err := NewSubmission("2025-11-03", nil, nil, nil, Tiles{Green: 1, Total: 3}, Grid{Rows: 1})
		assert.Error(t, err)
	})
}

func TestNewRecord_StoresEffectiveTime(t *testing.T) {
	submittedAt := time.Date(2025, time.November, 3, 9, 0, 0, 0, time.FixedZone("BST", 3600))

	t.Run("band time keeps estimate", func(t *testing.T) {
		sub, err := NewSubmission("2025-11-03", nil, nil, IntPtr(10), NewTiles(3, 0, 0), Grid{Rows: 1})
		require.NoError(t, err)

		record := NewRecord(sub, ScoreResult{EffectiveTimeSeconds: IntPtr(540)}, Player{ID: "42"}, submittedAt)
		require.NotNil(t, record.TimeSeconds)
		assert.Equal(t, 540, *record.TimeSeconds)
		require.NotNil(t, record.TimeBandMinutes)
		assert.Equal(t, 10, *record.TimeBandMinutes)
		assert.Equal(t, time.UTC, record.SubmittedAt.Location())
	})

	t.Run("no time stays empty", func(t *testing.T) {
		sub, err := NewSubmission("2025-11-03", nil, nil, nil, NewTiles(3, 0, 0), Grid{Rows: 1})
		require.NoError(t, err)

		record := NewRecord(sub, ScoreResult{}, Player{ID: "42"}, submittedAt)
		assert.Nil(t, record.TimeSeconds)
		assert.Nil(t, record.TimeBandMinutes)
	})
}

func TestRecord_Values(t *testing.T) {
	record := &Record{
		PuzzleDate:  "2025-11-03",
		PlayerID:    "42",
		TimeSeconds: IntPtr(135),
		SubmittedAt: time.Date(2025, time.November, 3, 9, 0, 0, 0, time.UTC),
	}

	values := record.Values()
	require.Len(t, values, len(RecordColumns))
	assert.Equal(t, "2025-11-03", values[0])
	assert.Equal(t, 135, values[5])
	assert.Equal(t, "", values[6])
	assert.Equal(t, "2025-11-03T09:00:00Z", values[15])
	assert.Equal(t, "2025-11-03:42", record.Key())
}
