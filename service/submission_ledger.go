package service

import (
	"context"
	"fmt"
	"time"

	"cluesbot/events"
	"cluesbot/models"

	lru "github.com/hashicorp/golang-lru/v2"
	log "github.com/sirupsen/logrus"
)

// DefaultLedgerCacheSize bounds the in-process duplicate cache
const DefaultLedgerCacheSize = 4096

// RejectReason explains why a save was not accepted
type RejectReason string

const (
	RejectDuplicateInMemory RejectReason = "duplicate_in_memory"
	RejectDuplicateInStore  RejectReason = "duplicate_in_store"
	RejectDuplicateOnAppend RejectReason = "duplicate_on_append"
)

// SaveResult is the outcome of a ledger save. A duplicate is a normal
// result with Accepted false, never an error.
type SaveResult struct {
	Accepted bool
	Reason   RejectReason
	Record   *models.Record
}

// SubmissionLedger guarantees at most one record per (puzzle date, player).
// The key cache only saves store round trips; the store's conditional
// append decides which writer wins.
type SubmissionLedger struct {
	store RecordStore
	cache *lru.Cache[string, struct{}]
	bus   EventEmitter
	clock Clock
}

// NewSubmissionLedger creates a ledger over store. bus may be nil.
func NewSubmissionLedger(store RecordStore, cacheSize int, bus EventEmitter, clock Clock) *SubmissionLedger {
	if cacheSize <= 0 {
		cacheSize = DefaultLedgerCacheSize
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &SubmissionLedger{
		store: store,
		cache: newLedgerCache(cacheSize),
		bus:   bus,
		clock: clock,
	}
}

// newLedgerCache builds the bounded set of keys confirmed during this process
// lifetime. The least recently used key is evicted once size is reached.
func newLedgerCache(size int) *lru.Cache[string, struct{}] {
	if size <= 0 {
		size = 1
	}
	cache, err := lru.New[string, struct{}](size)
	if err != nil {
		// only returned for a non-positive size
		panic(fmt.Sprintf("failed to create ledger cache: %v", err))
	}
	return cache
}

// Save persists the scored submission for player unless a record already exists for the key
func (l *SubmissionLedger) Save(ctx context.Context, sub *models.Submission, score models.ScoreResult, player models.Player) (SaveResult, error) {
	if sub == nil {
		return SaveResult{}, fmt.Errorf("submission is required")
	}
	if player.ID == "" {
		return SaveResult{}, fmt.Errorf("player id is required")
	}

	key := models.LedgerKey(sub.PuzzleDate, player.ID)
	logger := log.WithFields(log.Fields{
		"puzzle_date": sub.PuzzleDate,
		"player_id":   player.ID,
	})

	// Get marks the key as recently used
	if _, seen := l.cache.Get(key); seen {
		logger.Debug("Submission already confirmed in this process")
		return l.reject(ctx, sub, player, RejectDuplicateInMemory), nil
	}

	exists, err := l.store.Exists(ctx, sub.PuzzleDate, player.ID)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to check existing submission: %w", err)
	}
	if exists {
		l.cache.Add(key, struct{}{})
		logger.Debug("Submission already present in record store")
		return l.reject(ctx, sub, player, RejectDuplicateInStore), nil
	}

	if err := l.store.EnsureSchema(ctx); err != nil {
		return SaveResult{}, fmt.Errorf("failed to ensure record store schema: %w", err)
	}

	record := models.NewRecord(sub, score, player, l.clock.Now())
	appended, err := l.store.Append(ctx, record)
	if err != nil {
		return SaveResult{}, fmt.Errorf("failed to append submission record: %w", err)
	}

	l.cache.Add(key, struct{}{})
	if !appended {
		logger.Info("Concurrent submission won the append race")
		return l.reject(ctx, sub, player, RejectDuplicateOnAppend), nil
	}

	logger.WithFields(log.Fields{
		"total_score": record.TotalScore,
		"difficulty":  record.Difficulty,
	}).Info("Submission recorded")

	if l.bus != nil {
		l.bus.Emit(ctx, events.SubmissionAcceptedEvent{
			PuzzleDate: record.PuzzleDate,
			PlayerID:   record.PlayerID,
			Name:       record.Name(),
			Difficulty: record.Difficulty,
			TotalScore: record.TotalScore,
		})
	}

	return SaveResult{Accepted: true, Record: record}, nil
}

func (l *SubmissionLedger) reject(ctx context.Context, sub *models.Submission, player models.Player, reason RejectReason) SaveResult {
	if l.bus != nil {
		l.bus.Emit(ctx, events.SubmissionRejectedEvent{
			PuzzleDate: sub.PuzzleDate,
			PlayerID:   player.ID,
			Reason:     string(reason),
		})
	}
	return SaveResult{Accepted: false, Reason: reason}
}

// fixedClock is used by tests and the offline scorer
type fixedClock time.Time

func (c fixedClock) Now() time.Time {
	return time.Time(c)
}

// FixedClock returns a Clock that always reports t
func FixedClock(t time.Time) Clock {
	return fixedClock(t)
}
