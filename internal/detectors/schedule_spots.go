package detectors

import (
	"context"
	"fmt"
	"math"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

const (
	bigRestEdgeDays   = 6.0
	restEdgeDays      = 3.0
	divisionMagnitude = -0.5
)

// DivisionDetector tags division games. The label is neutral but the
// magnitude is slightly negative: familiar opponents keep games tight.
type DivisionDetector struct {
	teams TeamDirectory
}

func NewDivisionDetector(teams TeamDirectory) *DivisionDetector {
	return &DivisionDetector{teams: teams}
}

func (d *DivisionDetector) Category() string { return edge.CategoryDivision }

func (d *DivisionDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	team, err := d.teams.Team(ctx, game.Team)
	if err != nil {
		return noDataOr(err, "Team data unavailable")
	}
	opp, err := d.teams.Team(ctx, game.Opponent)
	if err != nil {
		return noDataOr(err, "Team data unavailable")
	}
	if !team.SameDivision(*opp) {
		return edge.Empty("Non-division opponent"), nil
	}

	s := edge.NewSignal(edge.SignalDivisionRivalry, player, week, divisionMagnitude, 45,
		fmt.Sprintf("%s %s rivalry vs %s", team.Conference, team.Division, game.Opponent),
		"Familiar opponents tend to keep games tight", d.Category())
	s.Impact = edge.ImpactNeutral
	return result([]edge.Signal{s}, ""), nil
}

// RestDetector compares days since each team's previous game.
type RestDetector struct {
	season int
	games  GameHistory
}

func NewRestDetector(season int, games GameHistory) *RestDetector {
	return &RestDetector{season: season, games: games}
}

func (d *RestDetector) Category() string { return edge.CategoryRest }

func (d *RestDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	teamRest, ok, err := d.restDays(ctx, game.Team, game)
	if err != nil || !ok {
		return d.noRest(err)
	}
	oppRest, ok, err := d.restDays(ctx, game.Opponent, game)
	if err != nil || !ok {
		return d.noRest(err)
	}

	diff := teamRest - oppRest
	var (
		t edge.SignalType
		m float64
	)
	switch {
	case diff >= bigRestEdgeDays:
		t, m = edge.SignalRestAdvantage, 2
	case diff >= restEdgeDays:
		t, m = edge.SignalRestAdvantage, 1.5
	case diff <= -bigRestEdgeDays:
		t, m = edge.SignalRestDisadvantage, -2
	case diff <= -restEdgeDays:
		t, m = edge.SignalRestDisadvantage, -1.5
	default:
		return edge.Empty(fmt.Sprintf("Even rest (%.0f vs %.0f days)", teamRest, oppRest)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(t, player, week, m, 55,
			fmt.Sprintf("%.0f days rest vs %.0f for %s", teamRest, oppRest, game.Opponent),
			"Extra preparation and recovery time", d.Category()),
	}, ""), nil
}

func (d *RestDetector) noRest(err error) (edge.DetectorResult, error) {
	if err != nil {
		return noDataOr(err, "No schedule history")
	}
	return edge.Empty("Season opener, no rest differential"), nil
}

// restDays rounds to whole days so Sunday-to-Sunday is 7.
func (d *RestDetector) restDays(ctx context.Context, team string, game edge.GameContext) (float64, bool, error) {
	games, err := d.games.TeamGames(ctx, d.season, team)
	if err != nil {
		return 0, false, err
	}
	prev, ok := previousGame(games, game.Kickoff)
	if !ok {
		return 0, false, nil
	}
	return math.Round(daysBetween(*prev.Kickoff, game.Kickoff)), true, nil
}
