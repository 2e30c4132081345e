package service

import (
	"context"
	"fmt"
	"sort"

	"cluesbot/models"
)

// StreakService derives consecutive-day streaks from a player's records
type StreakService struct {
	store RecordReader
}

// NewStreakService creates a streak service over store
func NewStreakService(store RecordReader) *StreakService {
	return &StreakService{store: store}
}

// Streak computes the streak state for playerID as of today
func (s *StreakService) Streak(ctx context.Context, playerID string, today models.PuzzleDate) (*models.StreakState, error) {
	records, err := s.store.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load records for streak: %w", err)
	}

	var dates []models.PuzzleDate
	for _, r := range records {
		if r.PlayerID == playerID && r.PuzzleDate != "" {
			dates = append(dates, r.PuzzleDate)
		}
	}
	dates = UniqueSortedDates(dates)

	state := &models.StreakState{
		PlayerID:      playerID,
		Today:         today,
		BestStreak:    BestStreak(dates),
		CurrentStreak: CurrentStreak(dates, today),
	}
	if len(dates) > 0 {
		last := dates[len(dates)-1]
		state.LastPlayedDate = &last
		state.PlayedToday = last == today
	}
	return state, nil
}

// UniqueSortedDates de-duplicates dates and sorts them ascending
func UniqueSortedDates(dates []models.PuzzleDate) []models.PuzzleDate {
	seen := make(map[models.PuzzleDate]bool, len(dates))
	out := make([]models.PuzzleDate, 0, len(dates))
	for _, d := range dates {
		if !seen[d] {
			seen[d] = true
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// BestStreak returns the longest run of consecutive days in sorted, unique dates
func BestStreak(sorted []models.PuzzleDate) int {
	if len(sorted) == 0 {
		return 0
	}

	best, run := 1, 1
	for i := 1; i < len(sorted); i++ {
		if sorted[i] == sorted[i-1].AddDays(1) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	return best
}

// CurrentStreak counts back from today, or from yesterday if today is not played yet
func CurrentStreak(sorted []models.PuzzleDate, today models.PuzzleDate) int {
	if len(sorted) == 0 {
		return 0
	}

	played := make(map[models.PuzzleDate]bool, len(sorted))
	for _, d := range sorted {
		played[d] = true
	}

	var anchor models.PuzzleDate
	switch {
	case played[today]:
		anchor = today
	case played[today.AddDays(-1)]:
		anchor = today.AddDays(-1)
	default:
		return 0
	}

	current := 0
	for cursor := anchor; played[cursor]; cursor = cursor.AddDays(-1) {
		current++
	}
	return current
}

// StreakFlair decorates a streak length
func StreakFlair(days int) string {
	switch {
	case days >= 14:
		return "👑🔥🔥🔥"
	case days >= 10:
		return "🚀🔥🔥🔥"
	case days >= 7:
		return "💥🔥🔥🔥"
	case days >= 5:
		return "🔥🔥🔥"
	case days >= 3:
		return "🔥🔥"
	case days >= 1:
		return "🔥"
	default:
		return ""
	}
}
