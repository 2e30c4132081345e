package models

// ScoreBreakdown carries the intermediate values used to build a score
type ScoreBreakdown struct {
	Greens          int     `json:"greens"`
	Clues           int     `json:"clues"`
	Retries         int     `json:"retries"`
	Tiles           int     `json:"tiles"`
	QualityRatio    float64 `json:"qualityRatio"`
	SpeedCapSeconds int     `json:"speedCapSeconds"`
	HasExactTime    bool    `json:"hasExactTime"`
	UsedBandTime    bool    `json:"usedBandTime"`
}

// ScoreResult is the scored form of a Submission
type ScoreResult struct {
	QualityScore         int            `json:"qualityScore"`
	SpeedScore           *int           `json:"speedScore"`
	Base                 int            `json:"base"`
	DifficultyMultiplier float64        `json:"difficultyMultiplier"`
	Total                int            `json:"total"`
	EffectiveTimeSeconds *int           `json:"effectiveTimeSeconds"`
	Breakdown            ScoreBreakdown `json:"breakdown"`
	Notes                []string       `json:"notes"`
}
