package models

import (
	"fmt"
	"time"
)

const puzzleDateLayout = "2006-01-02"

// PuzzleDate is a zero-padded YYYY-MM-DD calendar date. Because it is
// zero-padded, string comparison matches calendar order.
type PuzzleDate string

// NewPuzzleDate builds a PuzzleDate, rejecting days that do not exist in the given month
func NewPuzzleDate(year int, month time.Month, day int) (PuzzleDate, error) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return "", fmt.Errorf("invalid calendar date %04d-%02d-%02d", year, int(month), day)
	}
	return PuzzleDate(t.Format(puzzleDateLayout)), nil
}

// ParsePuzzleDate parses an ISO YYYY-MM-DD string
func ParsePuzzleDate(s string) (PuzzleDate, error) {
	t, err := time.Parse(puzzleDateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid puzzle date %q: %w", s, err)
	}
	return PuzzleDate(t.Format(puzzleDateLayout)), nil
}

// PuzzleDateOf returns the calendar date of t as observed in loc
func PuzzleDateOf(t time.Time, loc *time.Location) PuzzleDate {
	return PuzzleDate(t.In(loc).Format(puzzleDateLayout))
}

// Time returns midnight UTC of the date. Invalid dates yield the zero time.
func (d PuzzleDate) Time() time.Time {
	t, err := time.Parse(puzzleDateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// Valid reports whether d is a well-formed calendar date
func (d PuzzleDate) Valid() bool {
	return !d.Time().IsZero()
}

// AddDays shifts the date by n calendar days. Date-only arithmetic, so DST never applies.
func (d PuzzleDate) AddDays(n int) PuzzleDate {
	t := d.Time()
	if t.IsZero() {
		return d
	}
	return PuzzleDate(t.AddDate(0, 0, n).Format(puzzleDateLayout))
}

// Weekday returns the day of week of the date
func (d PuzzleDate) Weekday() time.Weekday {
	return d.Time().Weekday()
}

// Between reports whether d lies within [start, end] inclusive
func (d PuzzleDate) Between(start, end PuzzleDate) bool {
	return d >= start && d <= end
}

func (d PuzzleDate) String() string {
	return string(d)
}
