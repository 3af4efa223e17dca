package edge

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sig(magnitude float64, confidence int) Signal {
	return Signal{Type: SignalMatchupDefense, Magnitude: magnitude, Confidence: confidence}
}

func TestAggregateSignals(t *testing.T) {
	tests := []struct {
		name           string
		signals        []Signal
		wantImpact     float64
		wantConfidence int
	}{
		{
			name:           "no signals uses baseline confidence",
			signals:        nil,
			wantImpact:     0,
			wantConfidence: DefaultConfidence,
		},
		{
			name:           "single signal is confidence weighted",
			signals:        []Signal{sig(6, 50)},
			wantImpact:     3.0,
			wantConfidence: 50,
		},
		{
			name:           "three signal scenario",
			signals:        []Signal{sig(5, 80), sig(-2, 60), sig(3, 50)},
			wantImpact:     4.3,
			wantConfidence: 63,
		},
		{
			name:           "negative ties round toward positive infinity",
			signals:        []Signal{sig(-0.5, 50)},
			wantImpact:     -0.2,
			wantConfidence: 50,
		},
		{
			name:           "positive ties round up",
			signals:        []Signal{sig(0.5, 50)},
			wantImpact:     0.3,
			wantConfidence: 50,
		},
		{
			name:           "zero confidence contributes nothing to impact",
			signals:        []Signal{sig(9, 0), sig(1, 100)},
			wantImpact:     1.0,
			wantConfidence: 50,
		},
		{
			name:           "non-finite magnitudes are ignored for impact but count for confidence",
			signals:        []Signal{sig(math.NaN(), 90), sig(math.Inf(1), 90), sig(2, 60)},
			wantImpact:     1.2,
			wantConfidence: 80,
		},
		{
			name:           "no clipping of large totals",
			signals:        []Signal{sig(10, 100), sig(10, 100), sig(10, 100)},
			wantImpact:     30.0,
			wantConfidence: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AggregateSignals(tt.signals)
			assert.Equal(t, tt.wantImpact, got.OverallImpact)
			assert.Equal(t, tt.wantConfidence, got.Confidence)
		})
	}
}

func TestAggregateSignalsOrderIndependent(t *testing.T) {
	signals := []Signal{sig(0.1, 33), sig(0.2, 67), sig(-0.3, 90), sig(2.7, 45), sig(-1.15, 70)}
	want := AggregateSignals(signals)

	permute(signals, func(p []Signal) {
		got := AggregateSignals(p)
		assert.Equal(t, want, got)
	})
}

func TestHeadlineTierMonotonicUnderScaling(t *testing.T) {
	mixes := [][]Signal{
		{sig(1.5, 70), sig(-0.5, 50), sig(0.8, 60)},
		{sig(3, 80), sig(2, 60)},
		{sig(0.4, 40)},
		{sig(2, 90), sig(-1, 90), sig(1, 90)},
	}
	factors := []float64{1, 1.25, 1.5, 2, 3, 5}

	for _, mix := range mixes {
		base := tierRank(headline(AggregateSignals(mix).OverallImpact))
		prev := base
		for _, f := range factors {
			scaled := make([]Signal, len(mix))
			for i, s := range mix {
				s.Magnitude *= f
				scaled[i] = s
			}
			rank := tierRank(headline(AggregateSignals(scaled).OverallImpact))
			assert.GreaterOrEqual(t, rank, prev, "factor %v lowered the headline tier", f)
			prev = rank
		}
	}
}

func tierRank(h string) int {
	switch h {
	case HeadlineSignificant:
		return 0
	case HeadlineHeadwinds:
		return 1
	case HeadlineNeutral:
		return 2
	case HeadlineFavorable:
		return 3
	case HeadlineStrong:
		return 4
	}
	return -1
}

// permute calls fn with every ordering of s (Heap's algorithm).
func permute(s []Signal, fn func([]Signal)) {
	p := make([]Signal, len(s))
	copy(p, s)
	var generate func(k int)
	generate = func(k int) {
		if k == 1 {
			out := make([]Signal, len(p))
			copy(out, p)
			fn(out)
			return
		}
		generate(k - 1)
		for i := 0; i < k-1; i++ {
			if k%2 == 0 {
				p[i], p[k-1] = p[k-1], p[i]
			} else {
				p[0], p[k-1] = p[k-1], p[0]
			}
			generate(k - 1)
		}
	}
	generate(len(p))
}
