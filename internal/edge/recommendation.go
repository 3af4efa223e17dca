package edge

import (
	"fmt"
	"strings"
)

// Headline and closing thresholds on overall impact.
const (
	strongThreshold       = 4.0
	favorableThreshold    = 1.0
	significantThreshold  = -8.0
	headwindsThreshold    = -4.0
	startConfidentlyAbove = 3.0
	alternativesBelow     = -6.0
	windPenaltyThreshold  = -3.0
)

const (
	HeadlineStrong      = "Strong environment"
	HeadlineFavorable   = "Favorable setup"
	HeadlineSignificant = "Significant concerns"
	HeadlineHeadwinds   = "Some headwinds"
	HeadlineNeutral     = "Neutral environment"

	ClosingStart        = "Start with confidence"
	ClosingAlternatives = "Consider alternatives if available"
	ClosingFloor        = "Floor play — temper expectations"
	ClosingNormal       = "Proceed as normal"
)

// Recommend turns the aggregate score and a few category flags into a
// readable verdict. It never fails.
func Recommend(player Player, signals []Signal, overallImpact float64, results map[string]DetectorResult) string {
	clauses := []string{headline(overallImpact)}

	position := NormalizePosition(player.Position)

	if olineDowngrade(results) {
		clauses = append(clauses, fmt.Sprintf("Offensive line injuries downgrade the %s outlook", positionLabel(position)))
	}
	if position == PositionQB || position == PositionWR {
		if mph, ok := damagingWind(signals); ok {
			clauses = append(clauses, fmt.Sprintf("Strong winds limit the passing game (%s)", mph))
		}
	}
	if hasSignal(results[CategoryBetting], SignalBettingShootout) {
		clauses = append(clauses, "Vegas expects a shootout")
	}
	if hasSignal(results[CategoryBetting], SignalBettingBlowout) {
		clauses = append(clauses, "Blowout risk could flip the game script")
	}

	clauses = append(clauses, closing(overallImpact, signals))

	return strings.Join(clauses, ". ")
}

func headline(impact float64) string {
	switch {
	case impact >= strongThreshold:
		return HeadlineStrong
	case impact >= favorableThreshold:
		return HeadlineFavorable
	case impact <= significantThreshold:
		return HeadlineSignificant
	case impact <= headwindsThreshold:
		return HeadlineHeadwinds
	default:
		return HeadlineNeutral
	}
}

func closing(impact float64, signals []Signal) string {
	switch {
	case impact >= startConfidentlyAbove:
		return ClosingStart
	case impact <= alternativesBelow:
		return ClosingAlternatives
	}

	var positive, negative int
	for _, s := range signals {
		switch {
		case s.Magnitude > 0:
			positive++
		case s.Magnitude < 0:
			negative++
		}
	}
	if negative > positive {
		return ClosingFloor
	}
	return ClosingNormal
}

// olineDowngrade reports whether the O-line detector flagged the player's
// position. That detector only emits oline_health for positions it covers.
func olineDowngrade(results map[string]DetectorResult) bool {
	for _, s := range results[CategoryOLine].Signals {
		if s.Type == SignalOLineHealth && s.Magnitude < 0 {
			return true
		}
	}
	return false
}

func damagingWind(signals []Signal) (string, bool) {
	for _, s := range signals {
		if s.Type == SignalWeatherWind && s.Magnitude <= windPenaltyThreshold {
			return s.ShortDescription, true
		}
	}
	return "", false
}

func hasSignal(res DetectorResult, t SignalType) bool {
	for _, s := range res.Signals {
		if s.Type == t {
			return true
		}
	}
	return false
}

func positionLabel(position string) string {
	if position == "" {
		return "player"
	}
	return position
}
