package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

var offensiveLine = map[string]bool{
	"OL": true, "T": true, "G": true, "C": true, "OT": true, "OG": true,
	"LT": true, "LG": true, "RG": true, "RT": true,
}

var (
	olineSevere = positionEffects{
		edge.PositionQB: -2.5, edge.PositionRB: -2, edge.PositionWR: -1, edge.PositionTE: -1.5,
	}
	olineModerate = positionEffects{
		edge.PositionQB: -1.25, edge.PositionRB: -1, edge.PositionWR: -0.5, edge.PositionTE: -0.75,
	}
)

// OLineDetector reads the player's own injury report for missing starting
// linemen. Severity counts a sidelined starter as 1 and a questionable one
// as 0.5.
type OLineDetector struct {
	season   int
	injuries InjurySource
}

func NewOLineDetector(season int, injuries InjurySource) *OLineDetector {
	return &OLineDetector{season: season, injuries: injuries}
}

func (d *OLineDetector) Category() string { return edge.CategoryOLine }

func (d *OLineDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	if _, ok := olineSevere.For(player.Position); !ok {
		return edge.NotApplicable(), nil
	}

	reports, err := d.injuries.InjuryReports(ctx, d.season, week, game.Team)
	if err != nil {
		return noDataOr(err, "No injury report")
	}

	out, questionable := countStarters(reports, func(pos string) bool { return offensiveLine[pos] })
	severity := float64(out) + 0.5*float64(questionable)

	var effects positionEffects
	confidence := 0
	switch {
	case severity >= 2:
		effects, confidence = olineSevere, 70
	case severity >= 1:
		effects, confidence = olineModerate, 60
	default:
		if out+questionable > 0 {
			return edge.Empty(fmt.Sprintf("Offensive line mostly intact (%d questionable)", questionable)), nil
		}
		return edge.Empty("Offensive line healthy"), nil
	}

	m, _ := effects.For(player.Position)
	short := fmt.Sprintf("%d starting linemen out, %d questionable", out, questionable)
	return result([]edge.Signal{
		edge.NewSignal(edge.SignalOLineHealth, player, week, m, confidence, short,
			"Protection and run blocking downgrade", d.Category()),
	}, ""), nil
}

// countStarters tallies sidelined and questionable starters whose position
// matches.
func countStarters(reports []models.InjuryReport, match func(string) bool) (out, questionable int) {
	for _, r := range reports {
		if !r.Starter || !match(strings.ToUpper(r.Position)) {
			continue
		}
		switch {
		case r.Sidelined():
			out++
		case r.Questionable():
			questionable++
		}
	}
	return out, questionable
}
