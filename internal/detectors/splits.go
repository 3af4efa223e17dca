package detectors

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

const (
	venueSplitMinGames  = 3
	venueSplitThreshold = 1.5
	venueSplitScale     = 0.75
	venueSplitCap       = 3.0

	primetimeMinGames  = 2
	primetimeThreshold = 2.0
	primetimeScale     = 0.5
	primetimeCap       = 2.5
	primetimeHourET    = 19
)

var eastern = mustLoadLocation("America/New_York")

func mustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.FixedZone("EST", -5*60*60)
	}
	return loc
}

// splitSignal compares average fantasy points in games matching the upcoming
// condition against the rest. diff is scaled and capped.
func splitSignal(
	logs []models.PlayerGameLog,
	matches func(models.PlayerGameLog) bool,
	minIn, minOut int,
	threshold, scale, limit float64,
) (diff, magnitude float64, nIn int, ok bool) {
	in, out, nIn, nOut := splitAverage(logs, matches)
	if nIn < minIn || nOut < minOut {
		return 0, 0, nIn, false
	}
	diff = round2(in - out)
	if math.Abs(diff) < threshold {
		return diff, 0, nIn, true
	}
	return diff, round2(clamp(diff*scale, -limit, limit)), nIn, true
}

// HomeAwayDetector compares the player's production at home and on the road
// over this and last season.
type HomeAwayDetector struct {
	season int
	logs   GameLogSource
}

func NewHomeAwayDetector(season int, logs GameLogSource) *HomeAwayDetector {
	return &HomeAwayDetector{season: season, logs: logs}
}

func (d *HomeAwayDetector) Category() string { return edge.CategoryHomeAway }

func (d *HomeAwayDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	logs, err := d.logs.GameLogs(ctx, player.ID, d.season, week)
	if err != nil {
		return noDataOr(err, "No game logs")
	}

	venue := "road"
	if game.IsHome {
		venue = "home"
	}

	diff, m, n, ok := splitSignal(logs, func(l models.PlayerGameLog) bool { return l.IsHome == game.IsHome },
		venueSplitMinGames, venueSplitMinGames, venueSplitThreshold, venueSplitScale, venueSplitCap)
	if !ok {
		return edge.Empty("Not enough home and road games"), nil
	}
	if m == 0 {
		return edge.Empty(fmt.Sprintf("No meaningful %s split (%+.1f pts)", venue, diff)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(edge.SignalHomeAwaySplit, player, week, m, 50,
			fmt.Sprintf("%+.1f pts per game in %s games", diff, venue),
			fmt.Sprintf("Based on %d %s games", n, venue), d.Category()),
	}, ""), nil
}

// PrimetimeDetector applies to night games (7pm ET or later) and compares
// the player's primetime production with day games.
type PrimetimeDetector struct {
	season int
	logs   GameLogSource
}

func NewPrimetimeDetector(season int, logs GameLogSource) *PrimetimeDetector {
	return &PrimetimeDetector{season: season, logs: logs}
}

func (d *PrimetimeDetector) Category() string { return edge.CategoryPrimetime }

// IsPrimetime reports whether kickoff is in a night window on the east coast.
func IsPrimetime(kickoff time.Time) bool {
	return kickoff.In(eastern).Hour() >= primetimeHourET
}

func (d *PrimetimeDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	if !IsPrimetime(game.Kickoff) {
		return edge.Empty("Not a primetime game"), nil
	}

	logs, err := d.logs.GameLogs(ctx, player.ID, d.season, week)
	if err != nil {
		return noDataOr(err, "No game logs")
	}

	diff, m, n, ok := splitSignal(logs, func(l models.PlayerGameLog) bool { return l.Primetime },
		primetimeMinGames, venueSplitMinGames, primetimeThreshold, primetimeScale, primetimeCap)
	if !ok {
		return edge.Empty("Limited primetime history"), nil
	}
	if m == 0 {
		return edge.Empty(fmt.Sprintf("Primetime production in line with day games (%+.1f pts)", diff)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(edge.SignalPrimetime, player, week, m, 45,
			fmt.Sprintf("%+.1f pts per game under the lights", diff),
			fmt.Sprintf("Based on %d primetime games", n), d.Category()),
	}, ""), nil
}

// IndoorOutdoorDetector compares dome and open-air production for the venue
// of this week's game.
type IndoorOutdoorDetector struct {
	season int
	teams  TeamDirectory
	logs   GameLogSource
}

func NewIndoorOutdoorDetector(season int, teams TeamDirectory, logs GameLogSource) *IndoorOutdoorDetector {
	return &IndoorOutdoorDetector{season: season, teams: teams, logs: logs}
}

func (d *IndoorOutdoorDetector) Category() string { return edge.CategoryIndoorOutdoor }

func (d *IndoorOutdoorDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	venue, err := d.teams.Team(ctx, game.HomeTeam())
	if err != nil {
		return noDataOr(err, "Stadium data unavailable")
	}

	logs, err := d.logs.GameLogs(ctx, player.ID, d.season, week)
	if err != nil {
		return noDataOr(err, "No game logs")
	}

	setting := "outdoor"
	if venue.Dome {
		setting = "indoor"
	}

	diff, m, n, ok := splitSignal(logs, func(l models.PlayerGameLog) bool { return l.Indoor == venue.Dome },
		venueSplitMinGames, venueSplitMinGames, venueSplitThreshold, venueSplitScale, venueSplitCap)
	if !ok {
		return edge.Empty("Not enough indoor and outdoor games"), nil
	}
	if m == 0 {
		return edge.Empty(fmt.Sprintf("No meaningful %s split (%+.1f pts)", setting, diff)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(edge.SignalIndoorOutdoorSplit, player, week, m, 50,
			fmt.Sprintf("%+.1f pts per game in %s games", diff, setting),
			fmt.Sprintf("Based on %d %s games", n, setting), d.Category()),
	}, ""), nil
}
