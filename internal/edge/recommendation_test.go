package edge

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommend(t *testing.T) {
	qb := Player{ID: "qb", Name: "Quarterback", Position: PositionQB, Team: "BUF"}
	wr := Player{ID: "wr", Name: "Receiver", Position: PositionWR, Team: "BUF"}
	rb := Player{ID: "rb", Name: "Runner", Position: PositionRB, Team: "BUF"}

	wind := Signal{Type: SignalWeatherWind, Magnitude: -4, Confidence: 80, ShortDescription: "24 mph winds"}
	lightWind := Signal{Type: SignalWeatherWind, Magnitude: -2, Confidence: 70, ShortDescription: "17 mph winds"}
	oline := Signal{Type: SignalOLineHealth, Magnitude: -2.5, Confidence: 75}
	shootout := Signal{Type: SignalBettingShootout, Magnitude: 1.5, Confidence: 65}
	blowout := Signal{Type: SignalBettingBlowout, Magnitude: -1, Confidence: 60}

	tests := []struct {
		name    string
		player  Player
		signals []Signal
		impact  float64
		results map[string]DetectorResult
		want    string
	}{
		{
			name:   "no signals",
			player: wr,
			impact: 0,
			want:   "Neutral environment. Proceed as normal",
		},
		{
			name:    "strong environment",
			player:  wr,
			signals: []Signal{sig(5, 80), sig(-2, 60), sig(3, 50)},
			impact:  4.3,
			want:    "Strong environment. Start with confidence",
		},
		{
			name:    "favorable but not confident",
			player:  rb,
			signals: []Signal{sig(2, 80)},
			impact:  1.6,
			want:    "Favorable setup. Proceed as normal",
		},
		{
			name:    "favorable and confident",
			player:  rb,
			signals: []Signal{sig(4, 90)},
			impact:  3.6,
			want:    "Favorable setup. Start with confidence",
		},
		{
			name:    "more negative than positive signals",
			player:  rb,
			signals: []Signal{sig(-1, 60), sig(-1, 60), sig(0.5, 60)},
			impact:  -0.9,
			want:    "Neutral environment. Floor play — temper expectations",
		},
		{
			name:    "some headwinds",
			player:  rb,
			signals: []Signal{sig(-6, 80), sig(0.5, 80)},
			impact:  -4.4,
			want:    "Some headwinds. Proceed as normal",
		},
		{
			name:    "significant concerns",
			player:  rb,
			signals: []Signal{sig(-10, 90)},
			impact:  -9,
			want:    "Significant concerns. Consider alternatives if available",
		},
		{
			name:    "damaging wind for a quarterback",
			player:  qb,
			signals: []Signal{wind},
			impact:  -3.2,
			want:    "Neutral environment. Strong winds limit the passing game (24 mph winds). Floor play — temper expectations",
		},
		{
			name:    "damaging wind for a receiver",
			player:  wr,
			signals: []Signal{wind},
			impact:  -3.2,
			want:    "Neutral environment. Strong winds limit the passing game (24 mph winds). Floor play — temper expectations",
		},
		{
			name:    "wind ignored for a running back",
			player:  rb,
			signals: []Signal{wind},
			impact:  -3.2,
			want:    "Neutral environment. Floor play — temper expectations",
		},
		{
			name:    "light wind is not called out",
			player:  qb,
			signals: []Signal{lightWind},
			impact:  -1.4,
			want:    "Neutral environment. Floor play — temper expectations",
		},
		{
			name:    "oline downgrade",
			player:  qb,
			signals: []Signal{oline},
			impact:  -1.9,
			results: map[string]DetectorResult{CategoryOLine: {Signals: []Signal{oline}}},
			want:    "Neutral environment. Offensive line injuries downgrade the QB outlook. Floor play — temper expectations",
		},
		{
			name:    "all clauses in order",
			player:  qb,
			signals: []Signal{oline, wind, shootout, blowout},
			impact:  -4.7,
			results: map[string]DetectorResult{
				CategoryOLine:   {Signals: []Signal{oline}},
				CategoryWeather: {Signals: []Signal{wind}},
				CategoryBetting: {Signals: []Signal{shootout, blowout}},
			},
			want: "Some headwinds. Offensive line injuries downgrade the QB outlook. " +
				"Strong winds limit the passing game (24 mph winds). Vegas expects a shootout. " +
				"Blowout risk could flip the game script. Floor play — temper expectations",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Recommend(tt.player, tt.signals, tt.impact, tt.results)
			assert.Equal(t, tt.want, got)
			assert.False(t, strings.HasSuffix(got, "."))
		})
	}
}

func TestHeadlineBoundaries(t *testing.T) {
	tests := []struct {
		impact float64
		want   string
	}{
		{4.0, HeadlineStrong},
		{3.9, HeadlineFavorable},
		{1.0, HeadlineFavorable},
		{0.9, HeadlineNeutral},
		{-3.9, HeadlineNeutral},
		{-4.0, HeadlineHeadwinds},
		{-7.9, HeadlineHeadwinds},
		{-8.0, HeadlineSignificant},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, headline(tt.impact), "impact %v", tt.impact)
	}
}

func TestClosingBoundaries(t *testing.T) {
	assert.Equal(t, ClosingStart, closing(3.0, nil))
	assert.Equal(t, ClosingNormal, closing(2.9, nil))
	assert.Equal(t, ClosingAlternatives, closing(-6.0, nil))
	assert.Equal(t, ClosingNormal, closing(-5.9, []Signal{sig(-1, 50), sig(1, 50)}))
	assert.Equal(t, ClosingFloor, closing(-5.9, []Signal{sig(-1, 50)}))
}
