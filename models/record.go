package models

import (
	"strconv"
	"time"
)

// Record is one accepted submission as persisted in the record store.
// (PuzzleDate, PlayerID) is unique.
type Record struct {
	PuzzleDate           PuzzleDate `db:"puzzle_date"`
	Difficulty           string     `db:"difficulty"`
	PlayerID             string     `db:"player_id"`
	Username             string     `db:"username"`
	DisplayName          string     `db:"display_name"`
	TimeSeconds          *int       `db:"time_seconds"`
	TimeBandMinutes      *int       `db:"time_band_minutes"`
	Greens               int        `db:"greens"`
	Clues                int        `db:"clues"`
	Retries              int        `db:"retries"`
	QualityScore         int        `db:"quality_score"`
	SpeedScore           *int       `db:"speed_score"`
	BaseScore            int        `db:"base_score"`
	DifficultyMultiplier float64    `db:"difficulty_multiplier"`
	TotalScore           int        `db:"total_score"`
	SubmittedAt          time.Time  `db:"submitted_at"`
}

// Player identifies who sent a submission
type Player struct {
	ID          string
	Username    string
	DisplayName string
}

// DisplayLabel picks the best human label for a player
func DisplayLabel(playerID, username, displayName string) string {
	if displayName != "" {
		return displayName
	}
	if username != "" {
		return username
	}
	return "User " + playerID
}

// Name returns the label shown on leaderboards
func (r *Record) Name() string {
	return DisplayLabel(r.PlayerID, r.Username, r.DisplayName)
}

// NewRecord combines a submission, its score and the submitting player.
// TimeSeconds holds the effective time, so band-only cards keep their estimate.
func NewRecord(sub *Submission, score ScoreResult, player Player, submittedAt time.Time) *Record {
	return &Record{
		PuzzleDate:           sub.PuzzleDate,
		Difficulty:           sub.DifficultyLabel(),
		PlayerID:             player.ID,
		Username:             player.Username,
		DisplayName:          player.DisplayName,
		TimeSeconds:          score.EffectiveTimeSeconds,
		TimeBandMinutes:      sub.TimeBandMinutes,
		Greens:               sub.Tiles.Green,
		Clues:                sub.Tiles.Clue,
		Retries:              sub.Tiles.Retry,
		QualityScore:         score.QualityScore,
		SpeedScore:           score.SpeedScore,
		BaseScore:            score.Base,
		DifficultyMultiplier: score.DifficultyMultiplier,
		TotalScore:           score.Total,
		SubmittedAt:          submittedAt.UTC(),
	}
}

// RecordColumn maps a store header name to its database column
type RecordColumn struct {
	Header string
	Column string
}

// RecordColumns lists the required store columns in persisted order
var RecordColumns = []RecordColumn{
	{"puzzleDate", "puzzle_date"},
	{"difficulty", "difficulty"},
	{"playerId", "player_id"},
	{"username", "username"},
	{"displayName", "display_name"},
	{"timeSeconds", "time_seconds"},
	{"timeBandMinutes", "time_band_minutes"},
	{"greens", "greens"},
	{"clues", "clues"},
	{"retries", "retries"},
	{"qualityScore", "quality_score"},
	{"speedScore", "speed_score"},
	{"baseScore", "base_score"},
	{"difficultyMultiplier", "difficulty_multiplier"},
	{"totalScore", "total_score"},
	{"submittedAt", "submitted_at"},
}

// RecordHeaders returns the header names of RecordColumns
func RecordHeaders() []string {
	headers := make([]string, len(RecordColumns))
	for i, c := range RecordColumns {
		headers[i] = c.Header
	}
	return headers
}

// Values renders the record as header-ordered cell values. Nil pointers become empty cells.
func (r *Record) Values() []interface{} {
	return []interface{}{
		string(r.PuzzleDate),
		r.Difficulty,
		r.PlayerID,
		r.Username,
		r.DisplayName,
		optionalInt(r.TimeSeconds),
		optionalInt(r.TimeBandMinutes),
		r.Greens,
		r.Clues,
		r.Retries,
		r.QualityScore,
		optionalInt(r.SpeedScore),
		r.BaseScore,
		r.DifficultyMultiplier,
		r.TotalScore,
		r.SubmittedAt.UTC().Format(time.RFC3339),
	}
}

func optionalInt(v *int) interface{} {
	if v == nil {
		return ""
	}
	return *v
}

// Key returns the idempotency key of the record
func (r *Record) Key() string {
	return LedgerKey(r.PuzzleDate, r.PlayerID)
}

// LedgerKey builds the (date, player) idempotency key
func LedgerKey(date PuzzleDate, playerID string) string {
	return string(date) + ":" + playerID
}

// IntPtr is a small helper for optional integer fields
func IntPtr(v int) *int {
	return &v
}

// FormatOptionalInt renders an optional integer for display
func FormatOptionalInt(v *int) string {
	if v == nil {
		return "-"
	}
	return strconv.Itoa(*v)
}
