package edge

import (
	"strings"
	"time"
)

// Position groups used across detectors and the recommendation generator.
const (
	PositionQB  = "QB"
	PositionRB  = "RB"
	PositionWR  = "WR"
	PositionTE  = "TE"
	PositionK   = "K"
	PositionDST = "DST"
)

// Player is the resolved identity of the player being evaluated.
type Player struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Position string `json:"position"`
	Team     string `json:"team"`
}

// GameContext is the matchup a player's team plays in the target week. It is
// passed by value to every detector.
type GameContext struct {
	Team     string    `json:"team"`
	Opponent string    `json:"opponent"`
	IsHome   bool      `json:"is_home"`
	Kickoff  time.Time `json:"kickoff"`
}

// HomeTeam returns the abbreviation of the team hosting the game.
func (g GameContext) HomeTeam() string {
	if g.IsHome {
		return g.Team
	}
	return g.Opponent
}

// AwayTeam returns the abbreviation of the visiting team.
func (g GameContext) AwayTeam() string {
	if g.IsHome {
		return g.Opponent
	}
	return g.Team
}

// NormalizePosition maps roster spellings onto the canonical position codes.
func NormalizePosition(position string) string {
	p := strings.ToUpper(strings.TrimSpace(position))
	switch p {
	case "D/ST", "DEF", "DST", "D", "DEFENSE":
		return PositionDST
	case "PK", "K":
		return PositionK
	case "HB", "FB", "RB":
		return PositionRB
	}
	return p
}
