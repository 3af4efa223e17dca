package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameLineImpliedTotals(t *testing.T) {
	home, away := GameLine{HomeSpread: -7, Total: 50}.ImpliedTotals()
	assert.Equal(t, 28.5, home)
	assert.Equal(t, 21.5, away)
}

func TestInjuryReportStatus(t *testing.T) {
	tests := []struct {
		status       string
		sidelined    bool
		questionable bool
	}{
		{"Out", true, false},
		{"doubtful", true, false},
		{"IR", true, false},
		{"Questionable", false, true},
		{"Probable", false, false},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			r := InjuryReport{Status: tt.status}
			assert.Equal(t, tt.sidelined, r.Sidelined())
			assert.Equal(t, tt.questionable, r.Questionable())
		})
	}
}

func TestTeamInfoSameDivision(t *testing.T) {
	buf := TeamInfo{Abbreviation: "BUF", Conference: "AFC", Division: "East"}
	mia := TeamInfo{Abbreviation: "MIA", Conference: "AFC", Division: "East"}
	dal := TeamInfo{Abbreviation: "DAL", Conference: "NFC", Division: "East"}

	assert.True(t, buf.SameDivision(mia))
	assert.False(t, buf.SameDivision(dal))
	assert.False(t, TeamInfo{}.SameDivision(TeamInfo{}))
}

func TestGameOpponent(t *testing.T) {
	g := Game{HomeTeam: "KC", AwayTeam: "DEN"}
	assert.True(t, g.Involves("DEN"))
	assert.False(t, g.Involves("LV"))
	assert.Equal(t, "DEN", g.OpponentOf("KC"))
	assert.Equal(t, "KC", g.OpponentOf("DEN"))
}

func TestIncentiveRemaining(t *testing.T) {
	assert.Equal(t, 150.0, Incentive{Threshold: 1000, Progress: 850}.Remaining())
	assert.Equal(t, 0.0, Incentive{Threshold: 1000, Progress: 1100}.Remaining())
}
