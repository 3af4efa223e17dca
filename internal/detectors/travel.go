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
	earthRadiusMiles = 3958.8

	longTripMiles   = 2000.0
	mediumTripMiles = 1200.0
	eastboundHours  = 2
	earlyLocalHour  = 14
	shortWeekDays   = 5.0
)

// TravelDetector penalizes the away side for distance, eastbound early
// kickoffs and short weeks.
type TravelDetector struct {
	season int
	teams  TeamDirectory
	games  GameHistory
}

func NewTravelDetector(season int, teams TeamDirectory, games GameHistory) *TravelDetector {
	return &TravelDetector{season: season, teams: teams, games: games}
}

func (d *TravelDetector) Category() string { return edge.CategoryTravel }

func (d *TravelDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	if game.IsHome {
		return edge.Empty("Home game, no travel"), nil
	}

	host, err := d.teams.Team(ctx, game.Opponent)
	if err != nil {
		return noDataOr(err, "Stadium data unavailable")
	}
	visitor, err := d.teams.Team(ctx, game.Team)
	if err != nil {
		return noDataOr(err, "Team data unavailable")
	}

	var signals []edge.Signal

	miles := haversineMiles(visitor.Location(), host.Location())
	switch {
	case miles >= longTripMiles:
		signals = append(signals, edge.NewSignal(edge.SignalTravelDistance, player, week, -1.5, 60,
			fmt.Sprintf("%.0f mile trip", miles), "Cross-country travel", d.Category()))
	case miles >= mediumTripMiles:
		signals = append(signals, edge.NewSignal(edge.SignalTravelDistance, player, week, -0.75, 55,
			fmt.Sprintf("%.0f mile trip", miles), "Long road trip", d.Category()))
	}

	if shift, bodyClock, ok := eastboundEarlyKickoff(visitor.Timezone, host.Timezone, game.Kickoff); ok {
		signals = append(signals, edge.NewSignal(edge.SignalTravelTimezone, player, week, -1, 55,
			fmt.Sprintf("Traveling %dh east for a %s body-clock kickoff", shift, bodyClock.Format("15:04")),
			"Early kickoffs after eastbound travel historically underperform", d.Category()))
	}

	games, err := d.games.TeamGames(ctx, d.season, game.Team)
	if err != nil && !isNoData(err) {
		return edge.DetectorResult{}, err
	}
	if prev, ok := previousGame(games, game.Kickoff); ok {
		if rest := daysBetween(*prev.Kickoff, game.Kickoff); rest < shortWeekDays {
			signals = append(signals, edge.NewSignal(edge.SignalTravelShortWeek, player, week, -1, 60,
				fmt.Sprintf("Short week on the road (%.0f days rest)", math.Floor(rest)),
				"Limited recovery and preparation before traveling", d.Category()))
		}
	}

	return result(signals, "Manageable travel"), nil
}

func noDataOr(err error, summary string) (edge.DetectorResult, error) {
	if isNoData(err) {
		return edge.Empty(summary), nil
	}
	return edge.DetectorResult{}, err
}

func haversineMiles(a, b models.Location) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }
	dLat := toRad(b.Latitude - a.Latitude)
	dLon := toRad(b.Longitude - a.Longitude)
	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(a.Latitude))*math.Cos(toRad(b.Latitude))*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusMiles * math.Asin(math.Sqrt(h))
}

// eastboundEarlyKickoff reports the hours of eastward shift and the visitor's
// body-clock kickoff time when the local kickoff is early afternoon or
// before.
func eastboundEarlyKickoff(fromTZ, toTZ string, kickoff time.Time) (int, time.Time, bool) {
	from, err := time.LoadLocation(fromTZ)
	if err != nil {
		return 0, time.Time{}, false
	}
	to, err := time.LoadLocation(toTZ)
	if err != nil {
		return 0, time.Time{}, false
	}

	_, fromOffset := kickoff.In(from).Zone()
	local := kickoff.In(to)
	_, toOffset := local.Zone()

	shift := (toOffset - fromOffset) / 3600
	if shift < eastboundHours || local.Hour() >= earlyLocalHour {
		return 0, time.Time{}, false
	}
	return shift, kickoff.In(from), true
}
