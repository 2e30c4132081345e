package service

import (
	"fmt"
	"math"
	"strings"

	"cluesbot/models"
)

const (
	greenWeight = 1.0
	clueWeight  = 0.7
	retryWeight = 0.4

	// SpeedCapSeconds is the solve time at which the speed score reaches zero
	SpeedCapSeconds = 20 * 60

	qualityBaseWeight = 1.2
	speedBaseWeight   = 0.8

	noTilesNote = "No tiles found; cannot score."
	noTimeNote  = "No time provided; speed score omitted."
)

// DifficultyTable maps lower-case difficulty labels to score multipliers.
// Labels not in the table score at 1.0.
type DifficultyTable map[string]float64

var (
	// ScoringTable is the multiplier set applied by the scorer since launch
	ScoringTable = DifficultyTable{
		"easy":   1.0,
		"medium": 1.1,
		"hard":   1.2,
	}

	// PublishedTable is the multiplier set described to players in the rules post
	PublishedTable = DifficultyTable{
		"easy":   0.8,
		"medium": 1.0,
		"hard":   1.2,
		"expert": 1.5,
	}
)

// DifficultyTableByName resolves a configured multiplier profile
func DifficultyTableByName(name string) (DifficultyTable, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "scoring":
		return ScoringTable, nil
	case "published":
		return PublishedTable, nil
	default:
		return nil, fmt.Errorf("unknown multiplier profile %q", name)
	}
}

// ScoringEngine converts submissions into scores. It holds no mutable state.
type ScoringEngine struct {
	multipliers DifficultyTable
}

// NewScoringEngine creates a scorer using the given multiplier table
func NewScoringEngine(multipliers DifficultyTable) *ScoringEngine {
	if multipliers == nil {
		multipliers = ScoringTable
	}
	return &ScoringEngine{multipliers: multipliers}
}

// Multiplier returns the difficulty multiplier for a label, case-insensitively
func (e *ScoringEngine) Multiplier(difficulty *string) float64 {
	if difficulty == nil {
		return 1.0
	}
	if m, ok := e.multipliers[strings.ToLower(strings.TrimSpace(*difficulty))]; ok {
		return m
	}
	return 1.0
}

// Score computes the score for a submission
func (e *ScoringEngine) Score(sub *models.Submission) models.ScoreResult {
	greens, clues, retries := sub.Tiles.Green, sub.Tiles.Clue, sub.Tiles.Retry
	tiles := sub.Tiles.Total
	multiplier := e.Multiplier(sub.Difficulty)

	if tiles <= 0 {
		return models.ScoreResult{
			DifficultyMultiplier: multiplier,
			Breakdown: models.ScoreBreakdown{
				Greens:          greens,
				Clues:           clues,
				Retries:         retries,
				SpeedCapSeconds: SpeedCapSeconds,
			},
			Notes: []string{noTilesNote},
		}
	}

	notes := []string{}

	// float64 conversions block fused multiply-add.
	weighted := float64(greenWeight*float64(greens)) + float64(clueWeight*float64(clues)) + float64(retryWeight*float64(retries))
	qualityRatio := clamp(weighted/float64(tiles), 0, 1)
	qualityScore := roundHalfUp(float64(100 * qualityRatio))

	var (
		effectiveTime *int
		hasExactTime  bool
		usedBandTime  bool
	)
	switch {
	case sub.TimeSeconds != nil && *sub.TimeSeconds >= 0:
		effectiveTime = models.IntPtr(*sub.TimeSeconds)
		hasExactTime = true
	case sub.TimeBandMinutes != nil && *sub.TimeBandMinutes > 0:
		effectiveTime = models.IntPtr(EstimateSecondsFromBand(*sub.TimeBandMinutes))
		usedBandTime = true
		notes = append(notes, fmt.Sprintf("Time estimated from \"<%d minutes\".", *sub.TimeBandMinutes))
	default:
		notes = append(notes, noTimeNote)
	}

	var speedScore *int
	if effectiveTime != nil {
		capped := math.Min(float64(*effectiveTime), SpeedCapSeconds)
		speedScore = models.IntPtr(roundHalfUp(float64(100 * clamp(1-capped/SpeedCapSeconds, 0, 1))))
	}

	var base int
	if speedScore == nil {
		base = roundHalfUp(float64(float64(qualityScore) * qualityBaseWeight))
	} else {
		base = roundHalfUp(float64(float64(qualityScore)*qualityBaseWeight) + float64(float64(*speedScore)*speedBaseWeight))
	}

	return models.ScoreResult{
		QualityScore:         qualityScore,
		SpeedScore:           speedScore,
		Base:                 base,
		DifficultyMultiplier: multiplier,
		Total:                roundHalfUp(float64(float64(base) * multiplier)),
		EffectiveTimeSeconds: effectiveTime,
		Breakdown: models.ScoreBreakdown{
			Greens:          greens,
			Clues:           clues,
			Retries:         retries,
			Tiles:           tiles,
			QualityRatio:    qualityRatio,
			SpeedCapSeconds: SpeedCapSeconds,
			HasExactTime:    hasExactTime,
			UsedBandTime:    usedBandTime,
		},
		Notes: notes,
	}
}

// EstimateSecondsFromBand converts an "under N minutes" band into a point estimate
func EstimateSecondsFromBand(bandMinutes int) int {
	switch {
	case bandMinutes <= 5:
		return 4*60 + 30
	case bandMinutes <= 10:
		return 9 * 60
	case bandMinutes <= 15:
		return 13*60 + 30
	default:
		return roundHalfUp(float64(float64(bandMinutes) * 60 * 0.9))
	}
}

// MaxTotal is the highest total the engine can award under its multiplier table
func (e *ScoringEngine) MaxTotal() int {
	best := 1.0
	for _, m := range e.multipliers {
		best = math.Max(best, m)
	}
	return roundHalfUp(float64(200 * best))
}

// roundHalfUp expects x already rounded to float64, callers convert explicitly
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

func clamp(x, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, x))
}
