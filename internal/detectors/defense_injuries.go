package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

const maxDefenseInjuryBonus = 3.0

type defensiveUnit int

const (
	unitSecondary defensiveUnit = iota
	unitLinebackers
	unitFront
)

var defensiveUnits = map[string]defensiveUnit{
	"CB": unitSecondary, "S": unitSecondary, "SS": unitSecondary, "FS": unitSecondary, "DB": unitSecondary,
	"LB": unitLinebackers, "ILB": unitLinebackers, "OLB": unitLinebackers, "MLB": unitLinebackers,
	"DE": unitFront, "DT": unitFront, "NT": unitFront, "DL": unitFront, "EDGE": unitFront,
}

// Per sidelined starter, by the attacking position.
var unitBonus = map[string]map[defensiveUnit]float64{
	edge.PositionWR: {unitSecondary: 1, unitLinebackers: 0.25, unitFront: 0.25},
	edge.PositionTE: {unitSecondary: 0.75, unitLinebackers: 0.75, unitFront: 0.25},
	edge.PositionRB: {unitSecondary: 0.25, unitLinebackers: 0.75, unitFront: 0.75},
	edge.PositionQB: {unitSecondary: 0.75, unitLinebackers: 0.25, unitFront: 0.75},
}

// DefenseInjuryDetector credits attackers for missing defensive starters on
// the opponent. Questionable starters count half.
type DefenseInjuryDetector struct {
	season   int
	injuries InjurySource
}

func NewDefenseInjuryDetector(season int, injuries InjurySource) *DefenseInjuryDetector {
	return &DefenseInjuryDetector{season: season, injuries: injuries}
}

func (d *DefenseInjuryDetector) Category() string { return edge.CategoryDefenseInjuries }

func (d *DefenseInjuryDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	bonus, ok := unitBonus[edge.NormalizePosition(player.Position)]
	if !ok {
		return edge.NotApplicable(), nil
	}

	reports, err := d.injuries.InjuryReports(ctx, d.season, week, game.Opponent)
	if err != nil {
		return noDataOr(err, "No opponent injury report")
	}

	var (
		total   float64
		missing []string
	)
	for _, r := range reports {
		unit, defensive := defensiveUnits[strings.ToUpper(r.Position)]
		if !defensive || !r.Starter {
			continue
		}
		weight := 0.0
		switch {
		case r.Sidelined():
			weight = 1
		case r.Questionable():
			weight = 0.5
		default:
			continue
		}
		total += weight * bonus[unit]
		missing = append(missing, fmt.Sprintf("%s (%s, %s)", r.PlayerName, r.Position, r.Status))
	}

	total = round2(clamp(total, 0, maxDefenseInjuryBonus))
	if total < 0.5 {
		return edge.Empty(fmt.Sprintf("%s defense healthy", game.Opponent)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(edge.SignalDefenseInjury, player, week, total, 55,
			fmt.Sprintf("%d %s defensive starters limited", len(missing), game.Opponent),
			strings.Join(missing, ", "), d.Category()),
	}, ""), nil
}
