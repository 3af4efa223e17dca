package models

import (
	"strings"
	"time"

	"gorm.io/datatypes"
)

// Injury designations as published on the weekly report.
const (
	InjuryOut          = "Out"
	InjuryDoubtful     = "Doubtful"
	InjuryQuestionable = "Questionable"
	InjuryIR           = "IR"
)

// InjuryReport is one line of a team's weekly injury report.
type InjuryReport struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Season     int       `gorm:"not null;index:idx_injuries_lookup" json:"season"`
	Week       int       `gorm:"not null;index:idx_injuries_lookup" json:"week"`
	Team       string    `gorm:"not null;size:4;index:idx_injuries_lookup" json:"team"`
	PlayerName string    `gorm:"not null" json:"player_name"`
	Position   string    `gorm:"not null;size:8" json:"position"` // LT, LG, C, RG, RT, CB, S, LB, DE, DT...
	Status     string    `gorm:"not null;size:16" json:"status"`
	Starter    bool      `gorm:"default:false" json:"starter"`
	CreatedAt  time.Time `json:"created_at"`
}

// TableName specifies the table name for GORM
func (InjuryReport) TableName() string {
	return "injury_reports"
}

// Sidelined reports whether the player is not expected to play.
func (r InjuryReport) Sidelined() bool {
	switch strings.ToLower(r.Status) {
	case "out", "doubtful", "ir":
		return true
	}
	return false
}

// Questionable reports a game-time decision.
func (r InjuryReport) Questionable() bool {
	return strings.EqualFold(r.Status, InjuryQuestionable)
}

// PlayerGameLog is one player's box score line for one game along with the
// team totals needed for share calculations.
type PlayerGameLog struct {
	ID                 uint    `gorm:"primaryKey" json:"id"`
	PlayerID           uint    `gorm:"not null;index:idx_logs_player" json:"player_id"`
	Season             int     `gorm:"not null;index:idx_logs_player" json:"season"`
	Week               int     `gorm:"not null;index:idx_logs_player" json:"week"`
	Team               string  `gorm:"size:4" json:"team"`
	Opponent           string  `gorm:"size:4" json:"opponent"`
	IsHome             bool    `json:"is_home"`
	Indoor             bool    `json:"indoor"`
	Primetime          bool    `json:"primetime"`
	FantasyPoints      float64 `json:"fantasy_points"`
	Snaps              int     `json:"snaps"`
	TeamSnaps          int     `json:"team_snaps"`
	Targets            int     `json:"targets"`
	TeamTargets        int     `json:"team_targets"`
	Carries            int     `json:"carries"`
	TeamCarries        int     `json:"team_carries"`
	RedZoneTargets     int     `json:"red_zone_targets"`
	TeamRedZoneTargets int     `json:"team_red_zone_targets"`
	RedZoneCarries     int     `json:"red_zone_carries"`
	TeamRedZoneCarries int     `json:"team_red_zone_carries"`
}

// TableName specifies the table name for GORM
func (PlayerGameLog) TableName() string {
	return "player_game_logs"
}

// DefenseVsPosition is the fantasy points a defense allowed to one position
// in one week.
type DefenseVsPosition struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	Season        int     `gorm:"not null;index:idx_dvp_lookup" json:"season"`
	Week          int     `gorm:"not null;index:idx_dvp_lookup" json:"week"`
	Team          string  `gorm:"not null;size:4" json:"team"`
	Position      string  `gorm:"not null;size:8;index:idx_dvp_lookup" json:"position"`
	PointsAllowed float64 `json:"points_allowed"`
}

// TableName specifies the table name for GORM
func (DefenseVsPosition) TableName() string {
	return "defense_vs_position"
}

// Incentive is a statistical bonus clause in a contract.
type Incentive struct {
	Stat      string  `json:"stat"` // receiving_yards, rushing_yards, receptions, touchdowns...
	Threshold float64 `json:"threshold"`
	Progress  float64 `json:"progress"`
	Value     float64 `json:"value"` // bonus in dollars
}

// Remaining is how much of the stat is still needed to hit the threshold.
func (i Incentive) Remaining() float64 {
	if r := i.Threshold - i.Progress; r > 0 {
		return r
	}
	return 0
}

// Contract holds the contract details the contract detector reads.
type Contract struct {
	ID          uint                           `gorm:"primaryKey" json:"id"`
	PlayerID    uint                           `gorm:"not null;uniqueIndex" json:"player_id"`
	FinalYear   int                            `gorm:"not null" json:"final_year"` // last season under contract
	GamesPlayed int                            `json:"games_played"`
	Incentives  datatypes.JSONSlice[Incentive] `json:"incentives"`
	UpdatedAt   time.Time                      `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Contract) TableName() string {
	return "contracts"
}
