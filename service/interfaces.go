package service

import (
	"context"
	"time"

	"cluesbot/events"
	"cluesbot/models"
)

// RecordReader provides read access to persisted records
type RecordReader interface {
	// All returns every record in the store. Implementations validate the
	// store schema and fail with a *models.ConfigError when columns are missing.
	All(ctx context.Context) ([]*models.Record, error)
}

// RecordStore is the append-only record store behind the ledger
type RecordStore interface {
	RecordReader

	// EnsureSchema creates the header or table if it is entirely absent
	EnsureSchema(ctx context.Context) error

	// Exists reports whether a record exists for the key
	Exists(ctx context.Context, date models.PuzzleDate, playerID string) (bool, error)

	// Append inserts the record unless its key is already taken.
	// It returns false, nil when another writer got there first.
	Append(ctx context.Context, record *models.Record) (bool, error)
}

// EventEmitter publishes domain events
type EventEmitter interface {
	Emit(ctx context.Context, event events.Event)
}

// ChatCompleter produces a short free-text completion
type ChatCompleter interface {
	Complete(ctx context.Context, instructions, input string) (string, error)
}

// Clock supplies the current time
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock
type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}
