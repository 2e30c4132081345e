package repository

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"cluesbot/database"
	"cluesbot/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	log "github.com/sirupsen/logrus"
)

const (
	submissionsTable = "submissions"
	postgresStore    = "postgres"

	// SQLSTATE undefined_table
	pgUndefinedTable = "42P01"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx
type queryable interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Migrator creates the submissions table when it is absent
type Migrator func(ctx context.Context) error

// SubmissionRepository is the Postgres record store. A unique
// (puzzle_date, player_id) constraint makes Append conditional.
type SubmissionRepository struct {
	q       queryable
	migrate Migrator

	mu          sync.Mutex
	schemaReady bool
}

// NewSubmissionRepository creates a new submission repository. migrate may be nil,
// in which case a missing table is reported as a configuration error.
func NewSubmissionRepository(db *database.DB, migrate Migrator) *SubmissionRepository {
	return &SubmissionRepository{q: db.Pool, migrate: migrate}
}

// EnsureSchema creates the table if it is missing and validates its columns once
func (r *SubmissionRepository) EnsureSchema(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.schemaReady {
		return nil
	}

	columns, err := r.tableColumns(ctx)
	if err != nil {
		return err
	}

	if len(columns) == 0 {
		if r.migrate == nil {
			return &models.ConfigError{
				Store:  postgresStore,
				Detail: "table " + submissionsTable + " does not exist",
				Err:    models.ErrMissingColumn,
			}
		}
		log.WithField("table", submissionsTable).Info("Record table missing, applying migrations")
		if err := r.migrate(ctx); err != nil {
			return fmt.Errorf("failed to create %s table: %w", submissionsTable, err)
		}
		if columns, err = r.tableColumns(ctx); err != nil {
			return err
		}
	}

	if err := validateColumns(columns); err != nil {
		return err
	}

	r.schemaReady = true
	return nil
}

// Exists reports whether a record is stored for the date and player.
// A missing table holds no records.
func (r *SubmissionRepository) Exists(ctx context.Context, date models.PuzzleDate, playerID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM submissions WHERE puzzle_date = $1 AND player_id = $2)`

	var exists bool
	err := r.q.QueryRow(ctx, query, date.Time(), playerID).Scan(&exists)
	if isUndefinedTable(err) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check submission %s: %w", models.LedgerKey(date, playerID), err)
	}
	return exists, nil
}

// Append inserts record. It returns false without error when the key is taken.
func (r *SubmissionRepository) Append(ctx context.Context, record *models.Record) (bool, error) {
	query := `
		INSERT INTO submissions (
			puzzle_date, difficulty, player_id, username, display_name,
			time_seconds, time_band_minutes, greens, clues, retries,
			quality_score, speed_score, base_score, difficulty_multiplier, total_score,
			submitted_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT ON CONSTRAINT submissions_puzzle_date_player_id_key DO NOTHING`

	result, err := r.q.Exec(ctx, query,
		record.PuzzleDate.Time(),
		record.Difficulty,
		record.PlayerID,
		record.Username,
		record.DisplayName,
		record.TimeSeconds,
		record.TimeBandMinutes,
		record.Greens,
		record.Clues,
		record.Retries,
		record.QualityScore,
		record.SpeedScore,
		record.BaseScore,
		record.DifficultyMultiplier,
		record.TotalScore,
		record.SubmittedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert submission %s: %w", record.Key(), err)
	}

	return result.RowsAffected() == 1, nil
}

// All returns every record in insertion order. A missing table yields no records.
func (r *SubmissionRepository) All(ctx context.Context) ([]*models.Record, error) {
	columns, err := r.tableColumns(ctx)
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return nil, nil
	}
	if err := validateColumns(columns); err != nil {
		return nil, err
	}

	query := `
		SELECT
			to_char(puzzle_date, 'YYYY-MM-DD'),
			difficulty, player_id, username, display_name,
			time_seconds, time_band_minutes, greens, clues, retries,
			quality_score, speed_score, base_score, difficulty_multiplier, total_score,
			submitted_at
		FROM submissions
		ORDER BY id`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query submissions: %w", err)
	}
	defer rows.Close()

	var records []*models.Record
	for rows.Next() {
		var record models.Record
		var puzzleDate string
		err := rows.Scan(
			&puzzleDate,
			&record.Difficulty,
			&record.PlayerID,
			&record.Username,
			&record.DisplayName,
			&record.TimeSeconds,
			&record.TimeBandMinutes,
			&record.Greens,
			&record.Clues,
			&record.Retries,
			&record.QualityScore,
			&record.SpeedScore,
			&record.BaseScore,
			&record.DifficultyMultiplier,
			&record.TotalScore,
			&record.SubmittedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan submission: %w", err)
		}
		record.PuzzleDate = models.PuzzleDate(puzzleDate)
		record.SubmittedAt = record.SubmittedAt.UTC()
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate submissions: %w", err)
	}

	return records, nil
}

func (r *SubmissionRepository) tableColumns(ctx context.Context) (map[string]bool, error) {
	query := `
		SELECT column_name
		FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1`

	rows, err := r.q.Query(ctx, query, submissionsTable)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", submissionsTable, err)
	}

	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read %s columns: %w", submissionsTable, err)
	}

	columns := make(map[string]bool, len(names))
	for _, name := range names {
		columns[name] = true
	}
	return columns, nil
}

func validateColumns(columns map[string]bool) error {
	for _, c := range models.RecordColumns {
		if !columns[c.Column] {
			return models.NewMissingColumnError(postgresStore, c.Column)
		}
	}
	return nil
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUndefinedTable
}
