package detectors

import (
	"context"
	"fmt"
	"time"

	_ "time/tzdata"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

const testSeason = 2026

// fakeSources implements every source interface from in-memory fixtures.
type fakeSources struct {
	teams     map[string]models.TeamInfo
	games     map[string][]models.Game
	injuries  map[string][]models.InjuryReport
	logs      []models.PlayerGameLog
	ranks     []models.DefenseRank
	contract  *models.Contract
	former    []string
	weather   *models.WeatherConditions
	line      *models.GameLine
	err       error
	rankCalls int
}

func (f *fakeSources) Team(_ context.Context, abbr string) (*models.TeamInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.teams[abbr]
	if !ok {
		return nil, fmt.Errorf("%w: team %s", models.ErrNoData, abbr)
	}
	return &t, nil
}

func (f *fakeSources) TeamGames(_ context.Context, _ int, team string) ([]models.Game, error) {
	return f.games[team], f.err
}

func (f *fakeSources) InjuryReports(_ context.Context, _, _ int, team string) ([]models.InjuryReport, error) {
	return f.injuries[team], f.err
}

func (f *fakeSources) GameLogs(context.Context, string, int, int) ([]models.PlayerGameLog, error) {
	return f.logs, f.err
}

func (f *fakeSources) DefenseVsPosition(context.Context, int, int, string) ([]models.DefenseRank, error) {
	f.rankCalls++
	return f.ranks, f.err
}

func (f *fakeSources) Contract(context.Context, string) (*models.Contract, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.contract == nil {
		return nil, models.ErrNoData
	}
	return f.contract, nil
}

func (f *fakeSources) FormerTeams(context.Context, string) ([]string, error) {
	return f.former, f.err
}

func (f *fakeSources) Forecast(context.Context, string, models.Location, time.Time) (*models.WeatherConditions, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.weather == nil {
		return nil, models.ErrNoData
	}
	return f.weather, nil
}

func (f *fakeSources) GameLine(context.Context, int, int, string, string) (*models.GameLine, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.line == nil {
		return nil, models.ErrNoData
	}
	return f.line, nil
}

var fixtureTeams = map[string]models.TeamInfo{
	"BUF": {Abbreviation: "BUF", Stadium: "Highmark Stadium", Latitude: 42.7738, Longitude: -78.7870, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	"MIA": {Abbreviation: "MIA", Stadium: "Hard Rock Stadium", Latitude: 25.9580, Longitude: -80.2389, Timezone: "America/New_York", Conference: "AFC", Division: "East"},
	"SEA": {Abbreviation: "SEA", Stadium: "Lumen Field", Latitude: 47.5952, Longitude: -122.3316, Timezone: "America/Los_Angeles", Conference: "NFC", Division: "West"},
	"DET": {Abbreviation: "DET", Stadium: "Ford Field", Dome: true, Latitude: 42.3400, Longitude: -83.0456, Timezone: "America/Detroit", Conference: "NFC", Division: "North"},
	"CHI": {Abbreviation: "CHI", Stadium: "Soldier Field", Latitude: 41.8623, Longitude: -87.6167, Timezone: "America/Chicago", Conference: "NFC", Division: "North"},
}

func player(position string) edge.Player {
	return edge.Player{ID: "42", Name: "Test " + position, Position: position, Team: "BUF"}
}

// Sunday 1pm ET
var sundayEarly = time.Date(2026, 10, 11, 17, 0, 0, 0, time.UTC)

// Sunday 8:20pm ET
var sundayNight = time.Date(2026, 10, 12, 0, 20, 0, 0, time.UTC)

func homeGame(opp string, kickoff time.Time) edge.GameContext {
	return edge.GameContext{Team: "BUF", Opponent: opp, IsHome: true, Kickoff: kickoff}
}

func awayGame(opp string, kickoff time.Time) edge.GameContext {
	return edge.GameContext{Team: "BUF", Opponent: opp, IsHome: false, Kickoff: kickoff}
}

func kickoffPtr(t time.Time) *time.Time { return &t }

func magnitudes(res edge.DetectorResult) map[edge.SignalType]float64 {
	out := make(map[edge.SignalType]float64, len(res.Signals))
	for _, s := range res.Signals {
		out[s.Type] = s.Magnitude
	}
	return out
}
