package repository

import (
	"context"
	"errors"
	"sync"
	"testing"

	"cluesbot/database"
	"cluesbot/models"
	"cluesbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmissionRepository_AppendAndExists(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSubmissionRepository(testDB.DB, nil)
	ctx := context.Background()

	require.NoError(t, repo.EnsureSchema(ctx))

	exists, err := repo.Exists(ctx, "2025-11-03", "42")
	require.NoError(t, err)
	assert.False(t, exists)

	record := testutil.CreateTestRecord("2025-11-03", "42")
	appended, err := repo.Append(ctx, record)
	require.NoError(t, err)
	assert.True(t, appended)

	exists, err = repo.Exists(ctx, "2025-11-03", "42")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("second append for the same key is refused", func(t *testing.T) {
		again := testutil.CreateTestRecord("2025-11-03", "42")
		again.TotalScore = 1
		appended, err := repo.Append(ctx, again)
		require.NoError(t, err)
		assert.False(t, appended)
	})

	t.Run("other day for the same player is accepted", func(t *testing.T) {
		appended, err := repo.Append(ctx, testutil.CreateTestRecord("2025-11-04", "42"))
		require.NoError(t, err)
		assert.True(t, appended)
	})
}

func TestSubmissionRepository_All(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSubmissionRepository(testDB.DB, nil)
	ctx := context.Background()

	first := testutil.CreateTestRecord("2025-11-03", "1")
	second := testutil.CreateTestRecord("2025-11-03", "2")
	second.TimeSeconds = nil
	second.TimeBandMinutes = models.IntPtr(10)
	second.SpeedScore = nil

	for _, r := range []*models.Record{first, second} {
		appended, err := repo.Append(ctx, r)
		require.NoError(t, err)
		require.True(t, appended)
	}

	records, err := repo.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, first, records[0])
	assert.Equal(t, models.PuzzleDate("2025-11-03"), records[1].PuzzleDate)
	assert.Nil(t, records[1].TimeSeconds)
	assert.Nil(t, records[1].SpeedScore)
	require.NotNil(t, records[1].TimeBandMinutes)
	assert.Equal(t, 10, *records[1].TimeBandMinutes)
}

func TestSubmissionRepository_ConcurrentAppend(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewSubmissionRepository(testDB.DB, nil)
	ctx := context.Background()

	const writers = 8
	var wg sync.WaitGroup
	results := make(chan bool, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			appended, err := repo.Append(ctx, testutil.CreateTestRecord("2025-11-05", "race"))
			assert.NoError(t, err)
			results <- appended
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for appended := range results {
		if appended {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestSubmissionRepository_SchemaValidation(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	_, err := testDB.DB.Exec(ctx, `ALTER TABLE submissions DROP COLUMN speed_score`)
	require.NoError(t, err)

	repo := NewSubmissionRepository(testDB.DB, nil)

	err = repo.EnsureSchema(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrMissingColumn))

	var cfgErr *models.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "speed_score", cfgErr.Detail)

	_, err = repo.All(ctx)
	assert.ErrorIs(t, err, models.ErrMissingColumn)
}

func TestSubmissionRepository_MissingTable(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	require.NoError(t, database.MigrateDown(testDB.URL, "1"))

	repo := NewSubmissionRepository(testDB.DB, func(ctx context.Context) error {
		return database.RunMigrationsWithURL(testDB.URL)
	})

	exists, err := repo.Exists(ctx, "2025-11-03", "42")
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)

	require.NoError(t, repo.EnsureSchema(ctx))

	appended, err := repo.Append(ctx, testutil.CreateTestRecord("2025-11-03", "42"))
	require.NoError(t, err)
	assert.True(t, appended)
}
