package repository

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"cluesbot/models"
	"cluesbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newTestWorkbookStore(t *testing.T) *WorkbookStore {
	t.Helper()
	store, err := NewWorkbookStore(filepath.Join(t.TempDir(), "clues.xlsx"), "")
	require.NoError(t, err)
	return store
}

func TestNewWorkbookStore_RequiresPath(t *testing.T) {
	_, err := NewWorkbookStore("  ", "")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrStoreNotConfigured)

	var cfgErr *models.ConfigError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestWorkbookStore_EmptyWorkbook(t *testing.T) {
	store := newTestWorkbookStore(t)
	ctx := context.Background()

	exists, err := store.Exists(ctx, "2025-11-03", "42")
	require.NoError(t, err)
	assert.False(t, exists)

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestWorkbookStore_EnsureSchemaWritesHeader(t *testing.T) {
	store := newTestWorkbookStore(t)
	ctx := context.Background()

	require.NoError(t, store.EnsureSchema(ctx))
	require.NoError(t, store.EnsureSchema(ctx))

	f, err := excelize.OpenFile(store.path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DefaultWorkbookSheet)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.RecordHeaders(), rows[0])
}

func TestWorkbookStore_AppendRoundTrip(t *testing.T) {
	store := newTestWorkbookStore(t)
	ctx := context.Background()
	require.NoError(t, store.EnsureSchema(ctx))

	exact := testutil.CreateTestRecord("2025-11-03", "42")
	banded := testutil.CreateTestRecord("2025-11-03", "7")
	banded.TimeSeconds = nil
	banded.TimeBandMinutes = models.IntPtr(10)
	banded.SpeedScore = nil
	banded.DifficultyMultiplier = 1.1

	for _, r := range []*models.Record{exact, banded} {
		appended, err := store.Append(ctx, r)
		require.NoError(t, err)
		require.True(t, appended)
	}

	appended, err := store.Append(ctx, testutil.CreateTestRecord("2025-11-03", "42"))
	require.NoError(t, err)
	assert.False(t, appended)

	exists, err := store.Exists(ctx, "2025-11-03", "7")
	require.NoError(t, err)
	assert.True(t, exists)

	records, err := store.All(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, exact, records[0])
	assert.Equal(t, banded, records[1])
}

func TestWorkbookStore_AppendWithoutHeader(t *testing.T) {
	store := newTestWorkbookStore(t)
	ctx := context.Background()

	appended, err := store.Append(ctx, testutil.CreateTestRecord("2025-11-03", "42"))
	require.NoError(t, err)
	assert.True(t, appended)

	records, err := store.All(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestWorkbookStore_MissingColumn(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.xlsx")

	f := excelize.NewFile()
	idx, err := f.NewSheet(DefaultWorkbookSheet)
	require.NoError(t, err)
	f.SetActiveSheet(idx)
	headers := []interface{}{"puzzleDate", "playerId", "totalScore"}
	require.NoError(t, f.SetSheetRow(DefaultWorkbookSheet, "A1", &headers))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	store, err := NewWorkbookStore(path, DefaultWorkbookSheet)
	require.NoError(t, err)
	ctx := context.Background()

	err = store.EnsureSchema(ctx)
	assert.ErrorIs(t, err, models.ErrMissingColumn)

	_, err = store.All(ctx)
	assert.ErrorIs(t, err, models.ErrMissingColumn)

	// The key columns are present, so existence checks still work
	exists, err := store.Exists(ctx, "2025-11-03", "42")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestWorkbookStore_ConcurrentAppend(t *testing.T) {
	store := newTestWorkbookStore(t)
	ctx := context.Background()

	const writers = 6
	var wg sync.WaitGroup
	var mu sync.Mutex
	wins := 0
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			appended, err := store.Append(ctx, testutil.CreateTestRecord("2025-11-05", "race"))
			assert.NoError(t, err)
			if appended {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}
