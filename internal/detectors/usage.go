package detectors

import (
	"context"
	"fmt"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

const (
	usageRecentGames = 3
	usageMinGames    = 4
	shareSurgePoints = 5.0
	shareRisePoints  = 3.0
	snapSwingPoints  = 10.0
	usageConfidence  = 60
	snapConfidence   = 55
)

// UsageDetector compares the last three games' opportunity share with the
// rest of the season: targets for receivers, carries for backs, and snaps for
// both.
type UsageDetector struct {
	season int
	logs   GameLogSource
}

func NewUsageDetector(season int, logs GameLogSource) *UsageDetector {
	return &UsageDetector{season: season, logs: logs}
}

func (d *UsageDetector) Category() string { return edge.CategoryUsage }

func (d *UsageDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	position := edge.NormalizePosition(player.Position)

	var (
		signalType edge.SignalType
		label      string
		part       func(models.PlayerGameLog) (int, int)
	)
	switch position {
	case edge.PositionWR, edge.PositionTE:
		signalType, label = edge.SignalUsageTargetShare, "Target share"
		part = func(l models.PlayerGameLog) (int, int) { return l.Targets, l.TeamTargets }
	case edge.PositionRB:
		signalType, label = edge.SignalUsageCarryShare, "Carry share"
		part = func(l models.PlayerGameLog) (int, int) { return l.Carries, l.TeamCarries }
	default:
		return edge.NotApplicable(), nil
	}

	all, err := d.logs.GameLogs(ctx, player.ID, d.season, week)
	if err != nil {
		return noDataOr(err, "No game logs")
	}
	logs := seasonLogs(all, d.season)
	if len(logs) < usageMinGames {
		return edge.Empty(fmt.Sprintf("Only %d games played this season", len(logs))), nil
	}

	recent, earlier := logs[len(logs)-usageRecentGames:], logs[:len(logs)-usageRecentGames]

	var signals []edge.Signal
	if change, now, ok := shareChange(recent, earlier, part); ok {
		if m := shareMagnitude(change); m != 0 {
			signals = append(signals, edge.NewSignal(signalType, player, week, m, usageConfidence,
				fmt.Sprintf("%s %+.1f pts to %.1f%% over last %d", label, change, now, usageRecentGames),
				"Recent role compared with earlier this season", d.Category()))
		}
	}

	snaps := func(l models.PlayerGameLog) (int, int) { return l.Snaps, l.TeamSnaps }
	if change, now, ok := shareChange(recent, earlier, snaps); ok && (change >= snapSwingPoints || change <= -snapSwingPoints) {
		m := 1.0
		if change < 0 {
			m = -1.0
		}
		signals = append(signals, edge.NewSignal(edge.SignalUsageSnapShare, player, week, m, snapConfidence,
			fmt.Sprintf("Snap share %+.1f pts to %.1f%%", change, now),
			"Playing time trend", d.Category()))
	}

	return result(signals, "Stable role"), nil
}

func seasonLogs(logs []models.PlayerGameLog, season int) []models.PlayerGameLog {
	out := make([]models.PlayerGameLog, 0, len(logs))
	for _, l := range logs {
		if l.Season == season {
			out = append(out, l)
		}
	}
	return out
}

// shareChange returns the percentage-point change of recent over earlier and
// the recent share in percent.
func shareChange(recent, earlier []models.PlayerGameLog, part func(models.PlayerGameLog) (int, int)) (float64, float64, bool) {
	sum := func(logs []models.PlayerGameLog) (int, int) {
		var p, t int
		for _, l := range logs {
			a, b := part(l)
			p += a
			t += b
		}
		return p, t
	}
	rp, rt := sum(recent)
	ep, et := sum(earlier)
	r, ok1 := share(rp, rt)
	e, ok2 := share(ep, et)
	if !ok1 || !ok2 {
		return 0, 0, false
	}
	return round2((r - e) * 100), round2(r * 100), true
}

func shareMagnitude(change float64) float64 {
	switch {
	case change >= shareSurgePoints:
		return 2
	case change >= shareRisePoints:
		return 1
	case change <= -shareSurgePoints:
		return -2
	case change <= -shareRisePoints:
		return -1
	}
	return 0
}
