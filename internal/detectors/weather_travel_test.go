package detectors

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

func TestWeatherDetector(t *testing.T) {
	tests := []struct {
		name     string
		position string
		game     edge.GameContext
		weather  *models.WeatherConditions
		want     map[edge.SignalType]float64
		summary  string
	}{
		{
			name:     "dome skips forecast",
			position: edge.PositionQB,
			game:     awayGame("DET", sundayEarly),
			weather:  &models.WeatherConditions{WindSpeed: 30},
			want:     map[edge.SignalType]float64{},
			summary:  "Indoors at Ford Field, weather not a factor",
		},
		{
			name:     "severe wind hurts quarterbacks",
			position: edge.PositionQB,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 40, WindSpeed: 24},
			want:     map[edge.SignalType]float64{edge.SignalWeatherWind: -4},
			summary:  "24 mph winds",
		},
		{
			name:     "severe wind helps running backs",
			position: edge.PositionRB,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 40, WindSpeed: 24},
			want:     map[edge.SignalType]float64{edge.SignalWeatherWind: 1},
		},
		{
			name:     "moderate wind",
			position: edge.PositionWR,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 50, WindSpeed: 17},
			want:     map[edge.SignalType]float64{edge.SignalWeatherWind: -1.75},
		},
		{
			name:     "snow and cold for a kicker",
			position: edge.PositionK,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 15, WindSpeed: 5, Conditions: "Snow", PrecipProbability: 0.8},
			want: map[edge.SignalType]float64{
				edge.SignalWeatherPrecipitation: -1,
				edge.SignalWeatherTemperature:   -1,
			},
		},
		{
			name:     "rain helps defenses",
			position: edge.PositionDST,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 45, WindSpeed: 8, Conditions: "Rain", PrecipProbability: 0.3},
			want:     map[edge.SignalType]float64{edge.SignalWeatherPrecipitation: 1},
		},
		{
			name:     "calm conditions",
			position: edge.PositionWR,
			game:     homeGame("MIA", sundayEarly),
			weather:  &models.WeatherConditions{Temperature: 55, WindSpeed: 5, Conditions: "Clear"},
			want:     map[edge.SignalType]float64{},
			summary:  "Playable conditions (55°F, 5 mph wind)",
		},
		{
			name:     "no forecast yet",
			position: edge.PositionWR,
			game:     homeGame("MIA", sundayEarly),
			want:     map[edge.SignalType]float64{},
			summary:  "Forecast not available yet",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{teams: fixtureTeams, weather: tt.weather}
			res, err := NewWeatherDetector(src, src).Analyze(context.Background(), player(tt.position), tt.game, 6)
			require.NoError(t, err)
			assert.Equal(t, tt.want, magnitudes(res))
			assert.NotNil(t, res.Signals)
			if tt.summary != "" {
				assert.Equal(t, tt.summary, res.Summary)
			}
		})
	}
}

func TestWeatherDetectorUpstreamFailure(t *testing.T) {
	src := &fakeSources{err: errors.New("connection reset")}
	_, err := NewWeatherDetector(src, src).Analyze(context.Background(), player(edge.PositionQB), homeGame("MIA", sundayEarly), 6)
	assert.Error(t, err)
}

func TestTravelDetector(t *testing.T) {
	prevSunday := sundayEarly.Add(-7 * 24 * time.Hour)
	thursday := time.Date(2026, 10, 16, 0, 15, 0, 0, time.UTC)

	tests := []struct {
		name  string
		team  string
		game  edge.GameContext
		games map[string][]models.Game
		want  map[edge.SignalType]float64
	}{
		{
			name: "home game",
			game: homeGame("SEA", sundayEarly),
			want: map[edge.SignalType]float64{},
		},
		{
			name: "cross country westbound",
			game: awayGame("SEA", time.Date(2026, 10, 11, 20, 25, 0, 0, time.UTC)),
			want: map[edge.SignalType]float64{edge.SignalTravelDistance: -1.5},
		},
		{
			name: "west coast team at 1pm eastern",
			game: edge.GameContext{Team: "SEA", Opponent: "BUF", IsHome: false, Kickoff: sundayEarly},
			want: map[edge.SignalType]float64{
				edge.SignalTravelDistance: -1.5,
				edge.SignalTravelTimezone: -1,
			},
		},
		{
			name: "thursday road game",
			game: awayGame("MIA", thursday),
			games: map[string][]models.Game{
				"BUF": {
					{Week: 5, HomeTeam: "BUF", AwayTeam: "CHI", Kickoff: kickoffPtr(prevSunday)},
					{Week: 6, HomeTeam: "BUF", AwayTeam: "SEA", Kickoff: kickoffPtr(sundayEarly)},
					{Week: 7, HomeTeam: "MIA", AwayTeam: "BUF", Kickoff: kickoffPtr(thursday)},
				},
			},
			want: map[edge.SignalType]float64{edge.SignalTravelShortWeek: -1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{teams: fixtureTeams, games: tt.games}
			p := player(edge.PositionWR)
			p.Team = tt.game.Team
			res, err := NewTravelDetector(testSeason, src, src).Analyze(context.Background(), p, tt.game, 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, magnitudes(res))
		})
	}
}

func TestHaversineMiles(t *testing.T) {
	miles := haversineMiles(fixtureTeams["BUF"].Location(), fixtureTeams["SEA"].Location())
	assert.InDelta(t, 2120, miles, 60)
	assert.Zero(t, haversineMiles(fixtureTeams["BUF"].Location(), fixtureTeams["BUF"].Location()))
}
