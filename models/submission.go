package models

import (
	"errors"
	"fmt"
)

// Tile glyphs as they appear on a share card
const (
	GlyphGreen = '🟩'
	GlyphClue  = '🟡'
	GlyphRetry = '🟨'
)

// IsTileGlyph reports whether r is one of the recognised tile glyphs
func IsTileGlyph(r rune) bool {
	return r == GlyphGreen || r == GlyphClue || r == GlyphRetry
}

// Tiles holds per-outcome tile counts from the result grid
type Tiles struct {
	Green int `json:"green"`
	Clue  int `json:"clue"`
	Retry int `json:"retry"`
	Total int `json:"total"`
}

// NewTiles builds a Tiles value with the derived total
func NewTiles(green, clue, retry int) Tiles {
	return Tiles{
		Green: green,
		Clue:  clue,
		Retry: retry,
		Total: green + clue + retry,
	}
}

// Grid describes the layout of the result grid. Cols is nil when rows differ in width.
type Grid struct {
	Rows  int      `json:"rows"`
	Cols  *int     `json:"cols"`
	Lines []string `json:"lines"`
}

// Irregular reports whether grid rows have differing tile counts
func (g Grid) Irregular() bool {
	return g.Cols == nil
}

// Submission is a parsed share card
type Submission struct {
	PuzzleDate      PuzzleDate `json:"puzzleDate"`
	Difficulty      *string    `json:"difficulty"`
	TimeSeconds     *int       `json:"timeSeconds"`
	TimeBandMinutes *int       `json:"timeBandMinutes"`
	Tiles           Tiles      `json:"tiles"`
	Grid            Grid       `json:"grid"`
}

// ErrEmptyGrid is returned when a submission carries no tiles
var ErrEmptyGrid = errors.New("submission has no tiles")

// NewSubmission creates a Submission with validation
func NewSubmission(date PuzzleDate, difficulty *string, timeSeconds, timeBandMinutes *int, tiles Tiles, grid Grid) (*Submission, error) {
	if !date.Valid() {
		return nil, fmt.Errorf("puzzle date is required, got %q", date)
	}
	if tiles.Total != tiles.Green+tiles.Clue+tiles.Retry {
		return nil, fmt.Errorf("tile total %d does not match counts %d+%d+%d", tiles.Total, tiles.Green, tiles.Clue, tiles.Retry)
	}
	if tiles.Total <= 0 {
		return nil, ErrEmptyGrid
	}

	return &Submission{
		PuzzleDate:      date,
		Difficulty:      difficulty,
		TimeSeconds:     timeSeconds,
		TimeBandMinutes: timeBandMinutes,
		Tiles:           tiles,
		Grid:            grid,
	}, nil
}

// DifficultyLabel returns the difficulty or an empty string
func (s *Submission) DifficultyLabel() string {
	if s.Difficulty == nil {
		return ""
	}
	return *s.Difficulty
}

// TimeText renders the solve time the way players see it on the card
func (s *Submission) TimeText() string {
	switch {
	case s.TimeSeconds != nil:
		return fmt.Sprintf("%d:%02d", *s.TimeSeconds/60, *s.TimeSeconds%60)
	case s.TimeBandMinutes != nil:
		return fmt.Sprintf("under %d minutes", *s.TimeBandMinutes)
	default:
		return "no time"
	}
}
