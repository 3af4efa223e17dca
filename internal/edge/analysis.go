package edge

import (
	"sort"
	"time"
)

// EdgeAnalysis is the verdict for one player in one week. It is built once
// per request and never mutated afterwards.
type EdgeAnalysis struct {
	ID             string            `json:"id"`
	Player         Player            `json:"player"`
	Week           int               `json:"week"`
	Game           GameContext       `json:"game"`
	Summaries      map[string]string `json:"summaries"`
	Signals        []Signal          `json:"signals"`
	OverallImpact  float64           `json:"overall_impact"`
	Confidence     int               `json:"confidence"`
	Recommendation string            `json:"recommendation"`
	GeneratedAt    time.Time         `json:"generated_at"`
}

// Comparison is a side-by-side ranking of several players.
type Comparison struct {
	Week     *int                `json:"week,omitempty"`
	Analyses []EdgeAnalysis      `json:"analyses"`
	Failures []ComparisonFailure `json:"failures,omitempty"`
}

// ComparisonFailure records an identity that could not be resolved.
type ComparisonFailure struct {
	Identity string `json:"identity"`
	Reason   string `json:"reason"`
}

// RankAnalyses orders analyses by overall impact, best first. Ties keep a
// stable order by player name.
func RankAnalyses(analyses []EdgeAnalysis) {
	sort.SliceStable(analyses, func(i, j int) bool {
		if analyses[i].OverallImpact != analyses[j].OverallImpact {
			return analyses[i].OverallImpact > analyses[j].OverallImpact
		}
		return analyses[i].Player.Name < analyses[j].Player.Name
	})
}
