package detectors

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

func gameLog(season, week int, mutate func(*models.PlayerGameLog)) models.PlayerGameLog {
	l := models.PlayerGameLog{PlayerID: 42, Season: season, Week: week, TeamSnaps: 70, TeamTargets: 40, TeamCarries: 25}
	if mutate != nil {
		mutate(&l)
	}
	return l
}

func TestUsageDetector(t *testing.T) {
	receiverLogs := []models.PlayerGameLog{
		gameLog(testSeason-1, 17, func(l *models.PlayerGameLog) { l.Targets = 20; l.Snaps = 70 }),
	}
	for w := 1; w <= 3; w++ {
		receiverLogs = append(receiverLogs, gameLog(testSeason, w, func(l *models.PlayerGameLog) { l.Targets = 5; l.Snaps = 40 }))
	}
	for w := 4; w <= 6; w++ {
		receiverLogs = append(receiverLogs, gameLog(testSeason, w, func(l *models.PlayerGameLog) { l.Targets = 8; l.Snaps = 60 }))
	}

	var backLogs []models.PlayerGameLog
	for w := 1; w <= 3; w++ {
		backLogs = append(backLogs, gameLog(testSeason, w, func(l *models.PlayerGameLog) { l.Carries = 10; l.Snaps = 35 }))
	}
	for w := 4; w <= 6; w++ {
		backLogs = append(backLogs, gameLog(testSeason, w, func(l *models.PlayerGameLog) { l.Carries = 9; l.Snaps = 35 }))
	}

	tests := []struct {
		name     string
		position string
		logs     []models.PlayerGameLog
		want     map[edge.SignalType]float64
		summary  string
	}{
		{
			name:     "receiver role growing",
			position: edge.PositionWR,
			logs:     receiverLogs,
			want: map[edge.SignalType]float64{
				edge.SignalUsageTargetShare: 2,
				edge.SignalUsageSnapShare:   1,
			},
		},
		{
			name:     "back losing carries",
			position: edge.PositionRB,
			logs:     backLogs,
			want:     map[edge.SignalType]float64{edge.SignalUsageCarryShare: -1},
		},
		{
			name:     "too few games",
			position: edge.PositionWR,
			logs:     receiverLogs[:4],
			want:     map[edge.SignalType]float64{},
			summary:  "Only 3 games played this season",
		},
		{
			name:     "quarterbacks not applicable",
			position: edge.PositionQB,
			logs:     receiverLogs,
			want:     map[edge.SignalType]float64{},
			summary:  edge.SummaryNotApplicable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{logs: tt.logs}
			res, err := NewUsageDetector(testSeason, src).Analyze(context.Background(), player(tt.position), homeGame("MIA", sundayEarly), 7)
			require.NoError(t, err)
			assert.Equal(t, tt.want, magnitudes(res))
			if tt.summary != "" {
				assert.Equal(t, tt.summary, res.Summary)
			}
		})
	}
}

func TestContractDetector(t *testing.T) {
	tests := []struct {
		name     string
		contract *models.Contract
		want     map[edge.SignalType]float64
	}{
		{
			name: "contract year with a reachable incentive",
			contract: &models.Contract{FinalYear: testSeason, GamesPlayed: 9, Incentives: []models.Incentive{
				{Stat: "receiving_yards", Threshold: 1000, Progress: 900, Value: 250000},
				{Stat: "receptions", Threshold: 100, Progress: 40, Value: 500000},
			}},
			want: map[edge.SignalType]float64{
				edge.SignalContractYear:      0.5,
				edge.SignalContractIncentive: 1.5,
			},
		},
		{
			name: "incentive out of reach",
			contract: &models.Contract{FinalYear: testSeason + 2, GamesPlayed: 9, Incentives: []models.Incentive{
				{Stat: "receiving_yards", Threshold: 1000, Progress: 450, Value: 250000},
			}},
			want: map[edge.SignalType]float64{},
		},
		{
			name: "already earned",
			contract: &models.Contract{FinalYear: testSeason + 1, GamesPlayed: 9, Incentives: []models.Incentive{
				{Stat: "touchdowns", Threshold: 8, Progress: 9, Value: 100000},
			}},
			want: map[edge.SignalType]float64{},
		},
		{
			name: "no contract on file",
			want: map[edge.SignalType]float64{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{contract: tt.contract}
			res, err := NewContractDetector(testSeason, src).Analyze(context.Background(), player(edge.PositionWR), homeGame("MIA", sundayEarly), 10)
			require.NoError(t, err)
			assert.Equal(t, tt.want, magnitudes(res))
		})
	}
}

func TestContractDetectorDescribesIncentive(t *testing.T) {
	src := &fakeSources{contract: &models.Contract{FinalYear: testSeason + 1, GamesPlayed: 9, Incentives: []models.Incentive{
		{Stat: "receiving_yards", Threshold: 1000, Progress: 900, Value: 250000},
	}}}
	res, err := NewContractDetector(testSeason, src).Analyze(context.Background(), player(edge.PositionWR), homeGame("MIA", sundayEarly), 10)
	require.NoError(t, err)
	require.Len(t, res.Signals, 1)
	assert.Equal(t, "100 receiving yards from a $250000 bonus", res.Signals[0].ShortDescription)
}

func TestRevengeDetector(t *testing.T) {
	src := &fakeSources{former: []string{"NYJ", "mia"}}
	d := NewRevengeDetector(src)

	res, err := d.Analyze(context.Background(), player(edge.PositionWR), homeGame("MIA", sundayEarly), 6)
	require.NoError(t, err)
	assert.Equal(t, map[edge.SignalType]float64{edge.SignalRevengeGame: 1}, magnitudes(res))
	assert.Equal(t, 40, res.Signals[0].Confidence)

	res, err = d.Analyze(context.Background(), player(edge.PositionWR), homeGame("SEA", sundayEarly), 6)
	require.NoError(t, err)
	assert.Empty(t, res.Signals)

	res, err = d.Analyze(context.Background(), player(edge.PositionDST), homeGame("MIA", sundayEarly), 6)
	require.NoError(t, err)
	assert.Equal(t, edge.SummaryNotApplicable, res.Summary)
}

func TestRedZoneDetector(t *testing.T) {
	logs := func(mine, team int, carries bool) []models.PlayerGameLog {
		var out []models.PlayerGameLog
		// an old game with a very different share must fall outside the window
		out = append(out, gameLog(testSeason, 1, func(l *models.PlayerGameLog) {
			l.RedZoneTargets, l.TeamRedZoneTargets = 0, 20
			l.RedZoneCarries, l.TeamRedZoneCarries = 0, 20
		}))
		for w := 2; w <= 5; w++ {
			out = append(out, gameLog(testSeason, w, func(l *models.PlayerGameLog) {
				if carries {
					l.RedZoneCarries, l.TeamRedZoneCarries = mine, team
				} else {
					l.RedZoneTargets, l.TeamRedZoneTargets = mine, team
				}
			}))
		}
		return out
	}

	tests := []struct {
		name     string
		position string
		logs     []models.PlayerGameLog
		want     map[edge.SignalType]float64
	}{
		{"featured receiver", edge.PositionWR, logs(3, 10, false), map[edge.SignalType]float64{edge.SignalRedZoneTargets: 2}},
		{"secondary tight end", edge.PositionTE, logs(2, 10, false), map[edge.SignalType]float64{edge.SignalRedZoneTargets: 1}},
		{"invisible receiver", edge.PositionWR, logs(0, 10, false), map[edge.SignalType]float64{edge.SignalRedZoneTargets: -1}},
		{"goal line back", edge.PositionRB, logs(6, 10, true), map[edge.SignalType]float64{edge.SignalRedZoneCarries: 2}},
		{"committee back", edge.PositionRB, logs(3, 10, true), map[edge.SignalType]float64{}},
		{"quarterback", edge.PositionQB, logs(3, 10, false), map[edge.SignalType]float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := &fakeSources{logs: tt.logs}
			res, err := NewRedZoneDetector(testSeason, src).Analyze(context.Background(), player(tt.position), homeGame("MIA", sundayEarly), 6)
			require.NoError(t, err)
			assert.Equal(t, tt.want, magnitudes(res))
		})
	}
}
