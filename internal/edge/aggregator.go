package edge

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultConfidence is reported when no detector produced a signal.
const DefaultConfidence = 70

var (
	hundred = decimal.NewFromInt(100)
	half    = decimal.NewFromFloat(0.5)
)

// Aggregate is the reduced score of one analysis.
type Aggregate struct {
	OverallImpact float64 `json:"overall_impact"`
	Confidence    int     `json:"confidence"`
}

// AggregateSignals reduces signals to a confidence-weighted impact and a mean
// confidence:
//
//	overallImpact = round1(Σ magnitude × confidence / 100)
//	confidence    = round(mean(confidence)), or DefaultConfidence with no signals
//
// There is no clipping, normalization or per-category weighting. The sum is
// done in decimal so the result does not depend on signal order. A non-finite
// magnitude contributes nothing.
func AggregateSignals(signals []Signal) Aggregate {
	if len(signals) == 0 {
		return Aggregate{OverallImpact: 0, Confidence: DefaultConfidence}
	}

	impact := decimal.Zero
	var confidenceTotal int64
	for _, s := range signals {
		confidenceTotal += int64(s.Confidence)
		if math.IsNaN(s.Magnitude) || math.IsInf(s.Magnitude, 0) {
			continue
		}
		weighted := decimal.NewFromFloat(s.Magnitude).
			Mul(decimal.NewFromInt(int64(s.Confidence))).
			Div(hundred)
		impact = impact.Add(weighted)
	}

	mean := decimal.NewFromInt(confidenceTotal).Div(decimal.NewFromInt(int64(len(signals))))

	return Aggregate{
		OverallImpact: roundHalfUp(impact, 1).InexactFloat64(),
		Confidence:    int(roundHalfUp(mean, 0).IntPart()),
	}
}

// roundHalfUp rounds toward +inf on ties (-0.25 -> -0.2, 0.25 -> 0.3).
func roundHalfUp(d decimal.Decimal, places int32) decimal.Decimal {
	return d.Shift(places).Add(half).Floor().Shift(-places)
}
