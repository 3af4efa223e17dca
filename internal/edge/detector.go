package edge

import (
	"context"
)

// Detector categories. Each registered detector owns exactly one.
const (
	CategoryWeather         = "weather"
	CategoryTravel          = "travel"
	CategoryOLine           = "oline"
	CategoryBetting         = "betting"
	CategoryMatchup         = "matchup"
	CategoryDefenseInjuries = "defense_injuries"
	CategoryUsage           = "usage"
	CategoryContract        = "contract"
	CategoryRevenge         = "revenge"
	CategoryRedZone         = "redzone"
	CategoryHomeAway        = "home_away"
	CategoryPrimetime       = "primetime"
	CategoryDivision        = "division"
	CategoryRest            = "rest"
	CategoryIndoorOutdoor   = "indoor_outdoor"
)

// SummaryNotApplicable is returned by detectors that have nothing to say
// about the player's position.
const SummaryNotApplicable = "N/A"

// DetectorResult is what one detector produced for one analysis.
type DetectorResult struct {
	Signals []Signal `json:"signals"`
	Summary string   `json:"summary"`
}

// Detector is one independent analysis over a resolved matchup.
//
// Implementations return an empty result with an explanatory summary when
// they have no data or the player's position is irrelevant. An error is
// reserved for infrastructure failure and is absorbed by the Runner.
type Detector interface {
	Category() string
	Analyze(ctx context.Context, player Player, game GameContext, week int) (DetectorResult, error)
}

// Empty returns a result with no signals and the given summary.
func Empty(summary string) DetectorResult {
	return DetectorResult{Signals: []Signal{}, Summary: summary}
}

// NotApplicable is the result for positions a detector does not cover.
func NotApplicable() DetectorResult {
	return Empty(SummaryNotApplicable)
}
