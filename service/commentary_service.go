package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

const (
	commentaryTimeout  = 8 * time.Second
	commentaryMaxChars = 220
	commentaryMaxLines = 2

	commentaryInstructions = "You write short witty banter for a daily puzzle leaderboard in a group chat. " +
		"1-2 sentences max. One emoji max. No swearing, no insults, no personal attacks. " +
		"Reference the player's performance using the provided stats. Make it feel fresh and avoid clichés."
)

// CommentaryRequest describes one scored submission for commentary
type CommentaryRequest struct {
	PlayerName   string
	ScorePercent float64 // 0..1
	Difficulty   string
	Greens       int
	Clues        int
	Retries      int
	TimeText     string
	RankText     string
}

// CommentaryService writes a one-line reaction to a score. It never fails.
type CommentaryService struct {
	completer ChatCompleter
	timeout   time.Duration
}

// NewCommentaryService creates a commentary service. A nil completer always yields fallbacks.
func NewCommentaryService(completer ChatCompleter) *CommentaryService {
	return &CommentaryService{
		completer: completer,
		timeout:   commentaryTimeout,
	}
}

// Comment returns generated banter, or a fixed line matching the score bracket
func (s *CommentaryService) Comment(ctx context.Context, req CommentaryRequest) string {
	pct := clamp(req.ScorePercent, 0, 1)
	if s.completer == nil {
		return FallbackComment(pct)
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	text, err := s.completer.Complete(ctx, commentaryInstructions, commentaryInput(req, pct))
	if err != nil {
		log.WithError(err).WithField("player", req.PlayerName).Warn("Commentary generation failed, using fallback")
		return FallbackComment(pct)
	}

	text = trimComment(text)
	if text == "" {
		return FallbackComment(pct)
	}
	return text
}

// ScorePercent normalises a total against the highest achievable total
func ScorePercent(total, maxTotal int) float64 {
	if maxTotal <= 0 {
		return 0
	}
	return clamp(float64(total)/float64(maxTotal), 0, 1)
}

func pickTone(pct float64) string {
	switch {
	case pct >= 0.85:
		return "triumphant, smug-but-likeable, celebratory"
	case pct >= 0.70:
		return "confident, playful, lightly competitive"
	case pct >= 0.50:
		return "cheeky encouragement, upbeat"
	case pct >= 0.30:
		return "gentle roast, motivational"
	default:
		return "lightly savage but friendly, never mean"
	}
}

// FallbackComment is the canned line for a score bracket
func FallbackComment(pct float64) string {
	switch {
	case pct >= 0.85:
		return "🚀 Absolute clinic. The clues barely had time to exist."
	case pct >= 0.70:
		return "😎 Strong work, that's a proper tidy solve."
	case pct >= 0.50:
		return "👏 Solid! A few bumps, but you brought it home."
	case pct >= 0.30:
		return "🫡 We've seen worse. Tomorrow: fewer wobbles, more glory."
	default:
		return "🧯 That was… eventful. But hey, a score is a score. Get revenge tomorrow."
	}
}

func commentaryInput(req CommentaryRequest, pct float64) string {
	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = "?"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Player: %s\n", req.PlayerName)
	fmt.Fprintf(&b, "Difficulty: %s\n", difficulty)
	fmt.Fprintf(&b, "Performance: scorePercent=%d%%\n", int(math.Round(pct*100)))
	fmt.Fprintf(&b, "Tiles: greens=%d, clues=%d, retries=%d\n", req.Greens, req.Clues, req.Retries)
	fmt.Fprintf(&b, "Time: %s\n", req.TimeText)
	fmt.Fprintf(&b, "Rank today: %s\n", req.RankText)
	fmt.Fprintf(&b, "Desired tone: %s\n", pickTone(pct))
	b.WriteString("Write the comment now.")
	return b.String()
}

// trimComment keeps the first two lines joined, capped in length
func trimComment(text string) string {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	if len(lines) > commentaryMaxLines {
		lines = lines[:commentaryMaxLines]
	}
	joined := strings.TrimSpace(strings.Join(lines, " "))

	runes := []rune(joined)
	if len(runes) > commentaryMaxChars {
		joined = string(runes[:commentaryMaxChars])
	}
	return joined
}
