package detectors

import (
	"errors"
	"math"
	"strings"
	"time"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

// positionEffects maps a normalized position to a magnitude. Missing
// positions are unaffected.
type positionEffects map[string]float64

func (p positionEffects) For(position string) (float64, bool) {
	m, ok := p[edge.NormalizePosition(position)]
	return m, ok && m != 0
}

func isNoData(err error) bool {
	return errors.Is(err, models.ErrNoData)
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// round2 keeps magnitudes readable in JSON.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func summarize(signals []edge.Signal, fallback string) string {
	if len(signals) == 0 {
		return fallback
	}
	parts := make([]string, len(signals))
	for i, s := range signals {
		parts[i] = s.ShortDescription
	}
	return strings.Join(parts, "; ")
}

func result(signals []edge.Signal, fallback string) edge.DetectorResult {
	if signals == nil {
		signals = []edge.Signal{}
	}
	return edge.DetectorResult{Signals: signals, Summary: summarize(signals, fallback)}
}

// previousGame returns the last game in games that kicked off before kickoff.
func previousGame(games []models.Game, kickoff time.Time) (models.Game, bool) {
	var (
		prev  models.Game
		found bool
	)
	for _, g := range games {
		if g.Kickoff == nil || !g.Kickoff.Before(kickoff) {
			continue
		}
		if !found || g.Kickoff.After(*prev.Kickoff) {
			prev, found = g, true
		}
	}
	return prev, found
}

func daysBetween(from, to time.Time) float64 {
	return to.Sub(from).Hours() / 24
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// splitAverage averages fantasy points of logs matching and not matching
// pred.
func splitAverage(logs []models.PlayerGameLog, pred func(models.PlayerGameLog) bool) (in, out float64, nIn, nOut int) {
	var a, b []float64
	for _, l := range logs {
		if pred(l) {
			a = append(a, l.FantasyPoints)
		} else {
			b = append(b, l.FantasyPoints)
		}
	}
	return mean(a), mean(b), len(a), len(b)
}

func share(part, total int) (float64, bool) {
	if total <= 0 {
		return 0, false
	}
	return float64(part) / float64(total), true
}
