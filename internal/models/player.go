package models

import (
	"time"

	"gorm.io/datatypes"
)

// Player is a rostered (or released) NFL player.
type Player struct {
	ID          uint                        `gorm:"primaryKey" json:"id"`
	ExternalID  string                      `gorm:"index;size:64" json:"external_id"`
	Name        string                      `gorm:"not null;index" json:"name"`
	Position    string                      `gorm:"not null;size:8" json:"position"` // QB, RB, WR, TE, K, DST
	Team        string                      `gorm:"size:4;index" json:"team"`        // empty for free agents
	FormerTeams datatypes.JSONSlice[string] `json:"former_teams"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Player) TableName() string {
	return "players"
}

// TeamInfo is static per-franchise data used by the venue and travel
// detectors.
type TeamInfo struct {
	Abbreviation string  `gorm:"primaryKey;size:4" json:"abbreviation"`
	FullName     string  `gorm:"not null" json:"full_name"`
	Stadium      string  `json:"stadium"`
	Dome         bool    `gorm:"default:false" json:"dome"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Timezone     string  `gorm:"not null" json:"timezone"` // IANA name, e.g. America/New_York
	Conference   string  `gorm:"size:3" json:"conference"` // AFC or NFC
	Division     string  `gorm:"size:8" json:"division"`   // East, North, South, West
}

// TableName specifies the table name for GORM
func (TeamInfo) TableName() string {
	return "teams"
}

// Location returns the stadium coordinates.
func (t TeamInfo) Location() Location {
	return Location{Latitude: t.Latitude, Longitude: t.Longitude}
}

// SameDivision reports whether two teams share a conference and division.
func (t TeamInfo) SameDivision(other TeamInfo) bool {
	return t.Conference != "" && t.Conference == other.Conference && t.Division == other.Division
}
