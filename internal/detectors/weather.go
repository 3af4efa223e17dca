package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

const (
	windSevereMPH   = 20.0
	windModerateMPH = 15.0
	precipLikely    = 0.5
	frigidF         = 20.0
)

var (
	windSevere = positionEffects{
		edge.PositionQB: -4, edge.PositionWR: -3.5, edge.PositionTE: -2, edge.PositionK: -4,
		edge.PositionRB: 1, edge.PositionDST: 1.5,
	}
	windModerate = positionEffects{
		edge.PositionQB: -2, edge.PositionWR: -1.75, edge.PositionTE: -1, edge.PositionK: -2,
		edge.PositionRB: 0.5, edge.PositionDST: 0.75,
	}
	precipitation = positionEffects{
		edge.PositionQB: -1.5, edge.PositionWR: -1, edge.PositionTE: -0.5, edge.PositionK: -1,
		edge.PositionRB: 0.5, edge.PositionDST: 1,
	}
	frigid = positionEffects{
		edge.PositionQB: -1, edge.PositionWR: -1, edge.PositionK: -1,
	}
)

var wetConditions = map[string]bool{"rain": true, "snow": true, "thunderstorm": true, "drizzle": true}

// WeatherDetector scores the kickoff forecast at the home stadium. Domes are
// skipped.
type WeatherDetector struct {
	teams   TeamDirectory
	weather WeatherSource
}

func NewWeatherDetector(teams TeamDirectory, weather WeatherSource) *WeatherDetector {
	return &WeatherDetector{teams: teams, weather: weather}
}

func (d *WeatherDetector) Category() string { return edge.CategoryWeather }

func (d *WeatherDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	home := game.HomeTeam()
	venue, err := d.teams.Team(ctx, home)
	if err != nil {
		if isNoData(err) {
			return edge.Empty("Stadium data unavailable"), nil
		}
		return edge.DetectorResult{}, err
	}
	if venue.Dome {
		return edge.Empty(fmt.Sprintf("Indoors at %s, weather not a factor", venue.Stadium)), nil
	}

	wx, err := d.weather.Forecast(ctx, home, venue.Location(), game.Kickoff)
	if err != nil {
		if isNoData(err) {
			return edge.Empty("Forecast not available yet"), nil
		}
		return edge.DetectorResult{}, err
	}

	var signals []edge.Signal
	emit := func(t edge.SignalType, effects positionEffects, confidence int, short, details string) {
		if m, ok := effects.For(player.Position); ok {
			signals = append(signals, edge.NewSignal(t, player, week, m, confidence, short, details, d.Category()))
		}
	}

	switch {
	case wx.WindSpeed >= windSevereMPH:
		emit(edge.SignalWeatherWind, windSevere, 80, fmt.Sprintf("%.0f mph winds", wx.WindSpeed),
			"Sustained wind above 20 mph suppresses passing and kicking")
	case wx.WindSpeed >= windModerateMPH:
		emit(edge.SignalWeatherWind, windModerate, 70, fmt.Sprintf("%.0f mph winds", wx.WindSpeed),
			"Gusty conditions can disrupt deep passing and long kicks")
	}

	if wx.PrecipProbability >= precipLikely || wetConditions[strings.ToLower(wx.Conditions)] {
		label := wx.Conditions
		if label == "" {
			label = "Precipitation"
		}
		emit(edge.SignalWeatherPrecipitation, precipitation, 65,
			fmt.Sprintf("%s expected (%.0f%% chance)", label, wx.PrecipProbability*100),
			"Wet ball favors the run game and defenses")
	}

	if wx.Temperature <= frigidF {
		emit(edge.SignalWeatherTemperature, frigid, 60, fmt.Sprintf("Frigid %.0f°F kickoff", wx.Temperature),
			"Extreme cold hurts ball handling and kicking")
	}

	return result(signals, fmt.Sprintf("Playable conditions (%.0f°F, %.0f mph wind)", wx.Temperature, wx.WindSpeed)), nil
}
