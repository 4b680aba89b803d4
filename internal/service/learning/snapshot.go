package learning

import "time"

// SnapshotVersion is carried for forward compatibility; no load path
// branches on it yet.
const SnapshotVersion = "1"

// MoveProbability is one entry of a pattern's move distribution.
type MoveProbability struct {
	Move        int     `json:"move"`
	Probability float64 `json:"probability"`
}

// PatternDetail is a single learned board pattern, keyed by its canonical
// 9-character board string ('-' for empty).
type PatternDetail struct {
	BoardState    string            `json:"boardState"`
	Observations  int               `json:"observations"`
	Probabilities []MoveProbability `json:"probabilities"`
}

// BayesianSnapshot is the serialized opponent model, the same shape the
// stats boundary exposes.
type BayesianSnapshot struct {
	Version        string          `json:"version"`
	UpdatedAt      time.Time       `json:"updatedAt"`
	TotalPatterns  int             `json:"totalPatterns"`
	PatternDetails []PatternDetail `json:"patternDetails"`
}

// StrategySnapshot is the per-arm view of bandit state.
type StrategySnapshot struct {
	Name          string  `json:"name"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Draws         int     `json:"draws"`
	Total         int     `json:"total"`
	WinRate       float64 `json:"winRate"`
	Alpha         float64 `json:"alpha"`
	Beta          float64 `json:"beta"`
	ExpectedValue float64 `json:"expectedValue"`
}

// BanditSnapshot is the serialized strategy selector.
type BanditSnapshot struct {
	Version         string             `json:"version"`
	UpdatedAt       time.Time          `json:"updatedAt"`
	Strategies      []StrategySnapshot `json:"strategies"`
	CurrentStrategy string             `json:"currentStrategy"`
}
