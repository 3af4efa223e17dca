package detectors

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/cache"
	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

// Sources report "nothing recorded" with an error wrapping models.ErrNoData.
// Detectors turn that into an empty result; any other error is a failure.

type TeamDirectory interface {
	Team(ctx context.Context, abbreviation string) (*models.TeamInfo, error)
}

type GameHistory interface {
	TeamGames(ctx context.Context, season int, team string) ([]models.Game, error)
}

type InjurySource interface {
	InjuryReports(ctx context.Context, season, week int, team string) ([]models.InjuryReport, error)
}

type GameLogSource interface {
	GameLogs(ctx context.Context, playerID string, season, beforeWeek int) ([]models.PlayerGameLog, error)
}

type DefenseStatsSource interface {
	DefenseVsPosition(ctx context.Context, season, beforeWeek int, position string) ([]models.DefenseRank, error)
}

type CareerSource interface {
	Contract(ctx context.Context, playerID string) (*models.Contract, error)
	FormerTeams(ctx context.Context, playerID string) ([]string, error)
}

type WeatherSource interface {
	Forecast(ctx context.Context, team string, loc models.Location, kickoff time.Time) (*models.WeatherConditions, error)
}

type LineSource interface {
	GameLine(ctx context.Context, season, week int, home, away string) (*models.GameLine, error)
}

// Dependencies wires every detector. Cache and Logger are optional.
type Dependencies struct {
	Season          int
	Teams           TeamDirectory
	Games           GameHistory
	Injuries        InjurySource
	Logs            GameLogSource
	Defense         DefenseStatsSource
	Career          CareerSource
	Weather         WeatherSource
	Lines           LineSource
	Cache           cache.Cache
	MatchupCacheTTL time.Duration
	Logger          *logrus.Logger
}

// DefaultRegistry returns all fifteen detectors in reporting order.
func DefaultRegistry(deps Dependencies) []edge.Detector {
	return []edge.Detector{
		NewWeatherDetector(deps.Teams, deps.Weather),
		NewTravelDetector(deps.Season, deps.Teams, deps.Games),
		NewOLineDetector(deps.Season, deps.Injuries),
		NewBettingDetector(deps.Season, deps.Lines),
		NewMatchupDetector(deps.Season, deps.Defense, deps.Cache, deps.MatchupCacheTTL, deps.Logger),
		NewDefenseInjuryDetector(deps.Season, deps.Injuries),
		NewUsageDetector(deps.Season, deps.Logs),
		NewContractDetector(deps.Season, deps.Career),
		NewRevengeDetector(deps.Career),
		NewRedZoneDetector(deps.Season, deps.Logs),
		NewHomeAwayDetector(deps.Season, deps.Logs),
		NewPrimetimeDetector(deps.Season, deps.Logs),
		NewDivisionDetector(deps.Teams),
		NewRestDetector(deps.Season, deps.Games),
		NewIndoorOutdoorDetector(deps.Season, deps.Teams, deps.Logs),
	}
}
