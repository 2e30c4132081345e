package application

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"

	"cluesbot/models"

	log "github.com/sirupsen/logrus"
)

var (
	shareMarkerPattern = regexp.MustCompile(`(?i)I solved the daily Clues by Sam`)
	siteMarkerPattern  = regexp.MustCompile(`(?i)cluesbysam\.com`)
	headerDatePattern  = regexp.MustCompile(`(?i),\s*([A-Za-z]+\s+\d{1,2}(?:st|nd|rd|th)?\s+\d{4})`)
	humanDatePattern   = regexp.MustCompile(`(?i)^([A-Za-z]+)\s+(\d{1,2})(?:st|nd|rd|th)?\s+(\d{4})$`)
	difficultyPattern  = regexp.MustCompile(`\(([^)]+)\)`)
	exactTimePattern   = regexp.MustCompile(`\bin\s+(\d{1,2}):(\d{2})\b`)
	bandTimePattern    = regexp.MustCompile(`(?i)\bin\s+(?:less than|under)\s+(\d{1,2})\s+minutes?\b`)
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January,
	"feb": time.February, "february": time.February,
	"mar": time.March, "march": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May,
	"jun": time.June, "june": time.June,
	"jul": time.July, "july": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December,
}

// ParseShareCard extracts a Submission from a share card message.
// The second return value is false when the text is not a share card.
//
// A typical header looks like:
//
//	I solved the daily Clues by Sam, Nov 17th 2025 (Easy), in less than 10 minutes
func ParseShareCard(text string) (*models.Submission, bool) {
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	if !siteMarkerPattern.MatchString(text) && !shareMarkerPattern.MatchString(text) {
		return nil, false
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRightFunc(line, unicode.IsSpace)
	}

	header := lines[0]
	for _, line := range lines {
		if shareMarkerPattern.MatchString(line) {
			header = line
			break
		}
	}

	date, ok := parseHeaderDate(header)
	if !ok {
		log.WithField("header", header).Debug("Share card header has no usable date")
		return nil, false
	}

	var difficulty *string
	if m := difficultyPattern.FindStringSubmatch(header); m != nil {
		label := strings.TrimSpace(m[1])
		difficulty = &label
	}

	timeSeconds, timeBandMinutes := parseSolveTime(header)

	grid, tiles := parseGrid(lines)
	if grid.Rows == 0 {
		return nil, false
	}

	sub, err := models.NewSubmission(date, difficulty, timeSeconds, timeBandMinutes, tiles, grid)
	if err != nil {
		log.WithError(err).WithField("puzzle_date", date).Debug("Share card rejected")
		return nil, false
	}

	return sub, true
}

// parseHeaderDate finds "<Month> <day>[suffix] <year>" after a comma on the header.
// Ordinal suffixes are stripped without checking they agree with the day.
func parseHeaderDate(header string) (models.PuzzleDate, bool) {
	m := headerDatePattern.FindStringSubmatch(header)
	if m == nil {
		return "", false
	}

	parts := humanDatePattern.FindStringSubmatch(strings.TrimSpace(m[1]))
	if parts == nil {
		return "", false
	}

	month, ok := monthNames[strings.ToLower(parts[1])]
	if !ok {
		return "", false
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return "", false
	}
	year, err := strconv.Atoi(parts[3])
	if err != nil {
		return "", false
	}

	date, err := models.NewPuzzleDate(year, month, day)
	if err != nil {
		return "", false
	}
	return date, true
}

// parseSolveTime prefers an exact "in m:ss" time and falls back to "in under N minutes".
// The band fallback is only tried when no m:ss pattern is present at all.
func parseSolveTime(header string) (timeSeconds, timeBandMinutes *int) {
	if m := exactTimePattern.FindStringSubmatch(header); m != nil {
		minutes, _ := strconv.Atoi(m[1])
		seconds, _ := strconv.Atoi(m[2])
		if seconds >= 0 && seconds <= 59 {
			timeSeconds = models.IntPtr(minutes*60 + seconds)
		}
		return timeSeconds, nil
	}

	if m := bandTimePattern.FindStringSubmatch(header); m != nil {
		band, _ := strconv.Atoi(m[1])
		if band > 0 && band <= 99 {
			timeBandMinutes = models.IntPtr(band)
		}
	}
	return nil, timeBandMinutes
}

// parseGrid collects grid lines and counts tiles across all of them
func parseGrid(lines []string) (models.Grid, models.Tiles) {
	var (
		gridLines []string
		rowWidths []int
		green     int
		clue      int
		retry     int
	)

	for _, line := range lines {
		width, ok := gridLineWidth(line)
		if !ok {
			continue
		}
		gridLines = append(gridLines, strings.TrimSpace(line))
		rowWidths = append(rowWidths, width)

		for _, r := range line {
			switch r {
			case models.GlyphGreen:
				green++
			case models.GlyphClue:
				clue++
			case models.GlyphRetry:
				retry++
			}
		}
	}

	grid := models.Grid{
		Rows:  len(gridLines),
		Lines: gridLines,
	}
	if len(rowWidths) > 0 {
		regular := true
		for _, w := range rowWidths[1:] {
			if w != rowWidths[0] {
				regular = false
				break
			}
		}
		if regular {
			grid.Cols = models.IntPtr(rowWidths[0])
		}
	}

	return grid, models.NewTiles(green, clue, retry)
}

// gridLineWidth returns the number of tiles on a line made only of tiles and whitespace
func gridLineWidth(line string) (int, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return 0, false
	}

	width := 0
	for _, r := range trimmed {
		switch {
		case models.IsTileGlyph(r):
			width++
		case unicode.IsSpace(r):
		default:
			return 0, false
		}
	}
	return width, width > 0
}
