package models

import (
	"errors"
	"time"
)

// ErrNoData is returned by sources that have nothing for the requested
// matchup. Detectors treat it as "no signal", not as a failure.
var ErrNoData = errors.New("no data available")

// Location is a stadium position.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// WeatherConditions is the forecast nearest to kickoff.
type WeatherConditions struct {
	Temperature       float64   `json:"temperature"` // °F
	WindSpeed         float64   `json:"wind_speed"`  // mph
	Conditions        string    `json:"conditions"`
	PrecipProbability float64   `json:"precip_probability"` // 0..1
	ForecastTime      time.Time `json:"forecast_time"`
}

// GameLine is the consensus betting line for a game.
type GameLine struct {
	HomeSpread float64   `json:"home_spread"` // negative when the home team is favored
	Total      float64   `json:"total"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ImpliedTotals splits the total into per-team expected points.
func (l GameLine) ImpliedTotals() (home, away float64) {
	home = (l.Total - l.HomeSpread) / 2
	away = (l.Total + l.HomeSpread) / 2
	return home, away
}

// DefenseRank is one defense's season-to-date points allowed to a position.
type DefenseRank struct {
	Team          string  `json:"team"`
	PointsAllowed float64 `json:"points_allowed"` // per game
	Games         int     `json:"games"`
}

// All returns every gorm model in migration order.
func All() []interface{} {
	return []interface{}{
		&TeamInfo{},
		&Player{},
		&Game{},
		&InjuryReport{},
		&PlayerGameLog{},
		&DefenseVsPosition{},
		&Contract{},
	}
}
