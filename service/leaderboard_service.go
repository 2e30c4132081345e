package service

import (
	"context"
	"fmt"
	"sort"

	"cluesbot/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// LeaderboardService ranks players from the record store. It never writes.
type LeaderboardService struct {
	store RecordReader
	lang  language.Tag
}

// NewLeaderboardService creates a leaderboard service over store
func NewLeaderboardService(store RecordReader) *LeaderboardService {
	return &LeaderboardService{
		store: store,
		lang:  language.BritishEnglish,
	}
}

// Daily ranks each player's record for a single puzzle day
func (s *LeaderboardService) Daily(ctx context.Context, date models.PuzzleDate) (*models.Leaderboard, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for daily leaderboard: %w", err)
	}

	seen := make(map[string]bool)
	var entries []models.LeaderboardEntry
	for _, r := range records {
		if r.PuzzleDate != date || seen[r.PlayerID] {
			continue
		}
		seen[r.PlayerID] = true
		entries = append(entries, models.LeaderboardEntry{
			PlayerID:   r.PlayerID,
			Name:       r.Name(),
			Score:      r.TotalScore,
			Difficulty: r.Difficulty,
		})
	}

	return s.build(date, date, entries, 0), nil
}

// Range sums each player's totals over [start, end] inclusive and keeps the top N.
// A topN of zero or less keeps every player.
func (s *LeaderboardService) Range(ctx context.Context, start, end models.PuzzleDate, topN int) (*models.Leaderboard, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for range leaderboard: %w", err)
	}

	totals := make(map[string]*models.LeaderboardEntry)
	var order []string
	for _, r := range records {
		if r.PuzzleDate == "" || !r.PuzzleDate.Between(start, end) {
			continue
		}
		entry, ok := totals[r.PlayerID]
		if !ok {
			entry = &models.LeaderboardEntry{PlayerID: r.PlayerID}
			totals[r.PlayerID] = entry
			order = append(order, r.PlayerID)
		}
		// Latest record decides the label
		entry.Name = r.Name()
		entry.Score += r.TotalScore
	}

	entries := make([]models.LeaderboardEntry, 0, len(order))
	for _, id := range order {
		entries = append(entries, *totals[id])
	}

	return s.build(start, end, entries, topN), nil
}

// Rank returns the 1-based position of playerID on board, or 0 if absent
func Rank(board *models.Leaderboard, playerID string) int {
	if board == nil {
		return 0
	}
	for i, e := range board.Entries {
		if e.PlayerID == playerID {
			return i + 1
		}
	}
	return 0
}

func (s *LeaderboardService) build(start, end models.PuzzleDate, entries []models.LeaderboardEntry, topN int) *models.Leaderboard {
	s.sortEntries(entries)

	board := &models.Leaderboard{
		Start:        start,
		End:          end,
		TotalPlayers: len(entries),
	}
	if topN > 0 && len(entries) > topN {
		entries = entries[:topN]
	}
	board.Entries = entries
	if len(entries) > 0 {
		winner := entries[0]
		board.Winner = &winner
	}
	return board
}

// sortEntries orders by score descending, then by locale-collated name, then player ID
func (s *LeaderboardService) sortEntries(entries []models.LeaderboardEntry) {
	// Collators keep internal buffers, so one per sort
	collator := collate.New(s.lang)
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		if c := collator.CompareString(entries[i].Name, entries[j].Name); c != 0 {
			return c < 0
		}
		return entries[i].PlayerID < entries[j].PlayerID
	})
}
