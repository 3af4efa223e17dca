package edge

import (
	"time"
)

// SignalType is the closed set of evidence categories a detector may emit.
type SignalType string

const (
	SignalWeatherWind          SignalType = "weather_wind"
	SignalWeatherPrecipitation SignalType = "weather_precipitation"
	SignalWeatherTemperature   SignalType = "weather_temperature"
	SignalTravelDistance       SignalType = "travel_distance"
	SignalTravelTimezone       SignalType = "travel_timezone"
	SignalTravelShortWeek      SignalType = "travel_short_week"
	SignalOLineHealth          SignalType = "oline_health"
	SignalBettingShootout      SignalType = "betting_shootout"
	SignalBettingLowTotal      SignalType = "betting_low_total"
	SignalBettingBlowout       SignalType = "betting_blowout"
	SignalBettingImpliedTotal  SignalType = "betting_implied_total"
	SignalMatchupDefense       SignalType = "matchup_defense"
	SignalDefenseInjury        SignalType = "defense_injury"
	SignalUsageTargetShare     SignalType = "usage_target_share"
	SignalUsageCarryShare      SignalType = "usage_carry_share"
	SignalUsageSnapShare       SignalType = "usage_snap_share"
	SignalContractYear         SignalType = "contract_year"
	SignalContractIncentive    SignalType = "contract_incentive"
	SignalRevengeGame          SignalType = "revenge_game"
	SignalRedZoneTargets       SignalType = "redzone_targets"
	SignalRedZoneCarries       SignalType = "redzone_carries"
	SignalHomeAwaySplit        SignalType = "home_away_split"
	SignalPrimetime            SignalType = "primetime_performance"
	SignalDivisionRivalry      SignalType = "division_rivalry"
	SignalRestAdvantage        SignalType = "rest_advantage"
	SignalRestDisadvantage     SignalType = "rest_disadvantage"
	SignalIndoorOutdoorSplit   SignalType = "indoor_outdoor_split"
)

var signalTypes = map[SignalType]struct{}{
	SignalWeatherWind: {}, SignalWeatherPrecipitation: {}, SignalWeatherTemperature: {},
	SignalTravelDistance: {}, SignalTravelTimezone: {}, SignalTravelShortWeek: {},
	SignalOLineHealth: {}, SignalBettingShootout: {}, SignalBettingLowTotal: {},
	SignalBettingBlowout: {}, SignalBettingImpliedTotal: {}, SignalMatchupDefense: {},
	SignalDefenseInjury: {}, SignalUsageTargetShare: {}, SignalUsageCarryShare: {},
	SignalUsageSnapShare: {}, SignalContractYear: {}, SignalContractIncentive: {},
	SignalRevengeGame: {}, SignalRedZoneTargets: {}, SignalRedZoneCarries: {},
	SignalHomeAwaySplit: {}, SignalPrimetime: {}, SignalDivisionRivalry: {},
	SignalRestAdvantage: {}, SignalRestDisadvantage: {}, SignalIndoorOutdoorSplit: {},
}

// Valid reports whether t belongs to the known enumeration.
func (t SignalType) Valid() bool {
	_, ok := signalTypes[t]
	return ok
}

// Impact is the qualitative direction of a signal. It is descriptive only;
// Magnitude is what the aggregate score is computed from.
type Impact string

const (
	ImpactPositive Impact = "positive"
	ImpactNegative Impact = "negative"
	ImpactNeutral  Impact = "neutral"
)

// Signal is one detector finding about a player's matchup.
type Signal struct {
	Type             SignalType `json:"type"`
	SubjectID        string     `json:"subject_id"`
	Week             int        `json:"week"`
	Impact           Impact     `json:"impact"`
	Magnitude        float64    `json:"magnitude"`
	Confidence       int        `json:"confidence"`
	ShortDescription string     `json:"short_description"`
	Details          string     `json:"details,omitempty"`
	Source           string     `json:"source"`
	Timestamp        time.Time  `json:"timestamp"`
}

// ImpactFor derives the conventional impact label for a magnitude.
func ImpactFor(magnitude float64) Impact {
	switch {
	case magnitude > 0:
		return ImpactPositive
	case magnitude < 0:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}

// NewSignal builds a signal for player/week with the impact derived from magnitude.
// Callers that want a different label (division games are tagged neutral) overwrite Impact.
func NewSignal(t SignalType, player Player, week int, magnitude float64, confidence int, short, details, source string) Signal {
	return Signal{
		Type:             t,
		SubjectID:        player.ID,
		Week:             week,
		Impact:           ImpactFor(magnitude),
		Magnitude:        magnitude,
		Confidence:       confidence,
		ShortDescription: short,
		Details:          details,
		Source:           source,
		Timestamp:        time.Now().UTC(),
	}
}
