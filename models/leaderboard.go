package models

// LeaderboardEntry is one ranked player
type LeaderboardEntry struct {
	PlayerID   string
	Name       string
	Score      int
	Difficulty string // daily boards only
}

// Leaderboard is a ranked view over a single day or an inclusive date range
type Leaderboard struct {
	Start        PuzzleDate
	End          PuzzleDate
	Entries      []LeaderboardEntry
	Winner       *LeaderboardEntry
	TotalPlayers int
}

// Top returns a copy holding only the first n entries; TotalPlayers is kept
func (l *Leaderboard) Top(n int) *Leaderboard {
	if l == nil || n <= 0 || len(l.Entries) <= n {
		return l
	}
	top := *l
	top.Entries = l.Entries[:n:n]
	return &top
}

// IsEmpty reports whether anyone scored in the period
func (l *Leaderboard) IsEmpty() bool {
	return l == nil || len(l.Entries) == 0
}

// DateRange is an inclusive span of puzzle days with a human label
type DateRange struct {
	Start PuzzleDate
	End   PuzzleDate
	Label string
}

// StreakState summarises a player's consecutive-day history
type StreakState struct {
	PlayerID       string
	CurrentStreak  int
	BestStreak     int
	LastPlayedDate *PuzzleDate
	PlayedToday    bool
	Today          PuzzleDate
}
