package service

import (
	"fmt"
	"strings"
	"time"

	"cluesbot/models"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// DefaultReportingTimezone is where puzzle days begin and end
const DefaultReportingTimezone = "Europe/London"

// ReportingCalendar computes puzzle days in the fixed reporting timezone.
// All week and month arithmetic happens on dates, never on instants.
type ReportingCalendar struct {
	loc   *time.Location
	clock Clock
	nlp   *when.Parser
}

// NewReportingCalendar creates a calendar for the named IANA timezone
func NewReportingCalendar(timezone string, clock Clock) (*ReportingCalendar, error) {
	if timezone == "" {
		timezone = DefaultReportingTimezone
	}
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load reporting timezone %q: %w", timezone, err)
	}
	if clock == nil {
		clock = SystemClock{}
	}

	nlp := when.New(nil)
	nlp.Add(en.All...)
	nlp.Add(common.All...)

	return &ReportingCalendar{loc: loc, clock: clock, nlp: nlp}, nil
}

// Location returns the reporting timezone
func (c *ReportingCalendar) Location() *time.Location {
	return c.loc
}

// Today returns the current puzzle day
func (c *ReportingCalendar) Today() models.PuzzleDate {
	return models.PuzzleDateOf(c.clock.Now(), c.loc)
}

// Yesterday returns the previous puzzle day
func (c *ReportingCalendar) Yesterday() models.PuzzleDate {
	return c.Today().AddDays(-1)
}

// CurrentWeek returns Monday to Sunday of the ISO week containing today
func (c *ReportingCalendar) CurrentWeek() models.DateRange {
	monday := StartOfISOWeek(c.Today())
	return weekRange(monday)
}

// PreviousWeek returns Monday to Sunday of the ISO week before this one
func (c *ReportingCalendar) PreviousWeek() models.DateRange {
	monday := StartOfISOWeek(c.Today()).AddDays(-7)
	return weekRange(monday)
}

// CurrentMonth returns the first and last day of this calendar month
func (c *ReportingCalendar) CurrentMonth() models.DateRange {
	t := c.Today().Time()
	return monthRange(t.Year(), t.Month())
}

// PreviousMonth returns the first and last day of last calendar month
func (c *ReportingCalendar) PreviousMonth() models.DateRange {
	t := c.Today().Time()
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return monthRange(first.Year(), first.Month())
}

// ParseDay resolves user input such as "2025-11-03", "yesterday" or
// "last monday" to a puzzle day.
func (c *ReportingCalendar) ParseDay(input string) (models.PuzzleDate, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", fmt.Errorf("date is required")
	}
	if date, err := models.ParsePuzzleDate(input); err == nil {
		return date, nil
	}

	switch strings.ToLower(input) {
	case "today":
		return c.Today(), nil
	case "yesterday":
		return c.Yesterday(), nil
	}

	// Anchor at noon so relative phrases never cross midnight
	today := c.Today().Time()
	base := time.Date(today.Year(), today.Month(), today.Day(), 12, 0, 0, 0, c.loc)

	result, err := c.nlp.Parse(input, base)
	if err != nil {
		return "", fmt.Errorf("failed to parse date %q: %w", input, err)
	}
	if result == nil {
		return "", fmt.Errorf("could not recognise date %q", input)
	}
	return models.PuzzleDateOf(result.Time, c.loc), nil
}

// ParseRange resolves two user-supplied dates into an ordered inclusive range
func (c *ReportingCalendar) ParseRange(startInput, endInput string) (models.DateRange, error) {
	start, err := c.ParseDay(startInput)
	if err != nil {
		return models.DateRange{}, err
	}
	end, err := c.ParseDay(endInput)
	if err != nil {
		return models.DateRange{}, err
	}
	if end < start {
		start, end = end, start
	}
	return models.DateRange{
		Start: start,
		End:   end,
		Label: fmt.Sprintf("%s → %s", start, end),
	}, nil
}

// StartOfISOWeek returns the Monday on or before date
func StartOfISOWeek(date models.PuzzleDate) models.PuzzleDate {
	weekday := int(date.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	return date.AddDays(-(weekday - 1))
}

// MonthLabel renders a date's month like "November 2025"
func MonthLabel(date models.PuzzleDate) string {
	return date.Time().Format("January 2006")
}

func weekRange(monday models.PuzzleDate) models.DateRange {
	sunday := monday.AddDays(6)
	return models.DateRange{
		Start: monday,
		End:   sunday,
		Label: fmt.Sprintf("%s → %s", monday, sunday),
	}
}

func monthRange(year int, month time.Month) models.DateRange {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	start := models.PuzzleDateOf(first, time.UTC)
	return models.DateRange{
		Start: start,
		End:   models.PuzzleDateOf(last, time.UTC),
		Label: MonthLabel(start),
	}
}
