package models

import "time"

// Game is one scheduled matchup. Kickoff is nil until the league publishes
// a time (flexed games, late-season slots).
type Game struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Season    int        `gorm:"not null;index:idx_games_season_week" json:"season"`
	Week      int        `gorm:"not null;index:idx_games_season_week" json:"week"`
	HomeTeam  string     `gorm:"not null;size:4" json:"home_team"`
	AwayTeam  string     `gorm:"not null;size:4" json:"away_team"`
	Kickoff   *time.Time `json:"kickoff,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Game) TableName() string {
	return "games"
}

// Involves reports whether team plays in this game.
func (g Game) Involves(team string) bool {
	return g.HomeTeam == team || g.AwayTeam == team
}

// OpponentOf returns the other team in the game.
func (g Game) OpponentOf(team string) string {
	if g.HomeTeam == team {
		return g.AwayTeam
	}
	return g.HomeTeam
}
