package detectors

import (
	"context"
	"fmt"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

const (
	redZoneWindow   = 4
	redZoneMinGames = 2
)

type redZoneTiers struct {
	elite, strong, weak float64
}

var (
	receiverRedZone = redZoneTiers{elite: 0.25, strong: 0.18, weak: 0.05}
	rusherRedZone   = redZoneTiers{elite: 0.50, strong: 0.35, weak: 0.15}
)

// RedZoneDetector scores the player's share of team red-zone opportunities
// over the last four games.
type RedZoneDetector struct {
	season int
	logs   GameLogSource
}

func NewRedZoneDetector(season int, logs GameLogSource) *RedZoneDetector {
	return &RedZoneDetector{season: season, logs: logs}
}

func (d *RedZoneDetector) Category() string { return edge.CategoryRedZone }

func (d *RedZoneDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	var (
		signalType edge.SignalType
		tiers      redZoneTiers
		label      string
		part       func(models.PlayerGameLog) (int, int)
	)
	switch edge.NormalizePosition(player.Position) {
	case edge.PositionWR, edge.PositionTE:
		signalType, tiers, label = edge.SignalRedZoneTargets, receiverRedZone, "red-zone targets"
		part = func(l models.PlayerGameLog) (int, int) { return l.RedZoneTargets, l.TeamRedZoneTargets }
	case edge.PositionRB:
		signalType, tiers, label = edge.SignalRedZoneCarries, rusherRedZone, "red-zone carries"
		part = func(l models.PlayerGameLog) (int, int) { return l.RedZoneCarries, l.TeamRedZoneCarries }
	default:
		return edge.NotApplicable(), nil
	}

	all, err := d.logs.GameLogs(ctx, player.ID, d.season, week)
	if err != nil {
		return noDataOr(err, "No game logs")
	}
	logs := seasonLogs(all, d.season)
	if len(logs) < redZoneMinGames {
		return edge.Empty("Not enough games for red-zone trends"), nil
	}
	if len(logs) > redZoneWindow {
		logs = logs[len(logs)-redZoneWindow:]
	}

	var mine, team int
	for _, l := range logs {
		a, b := part(l)
		mine += a
		team += b
	}
	s, ok := share(mine, team)
	if !ok {
		return edge.Empty("Team has no red-zone trips recently"), nil
	}

	var m float64
	var confidence int
	switch {
	case s >= tiers.elite:
		m, confidence = 2, 65
	case s >= tiers.strong:
		m, confidence = 1, 55
	case s <= tiers.weak:
		m, confidence = -1, 55
	default:
		return edge.Empty(fmt.Sprintf("%.0f%% of team %s", s*100, label)), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(signalType, player, week, m, confidence,
			fmt.Sprintf("%.0f%% of team %s (last %d)", s*100, label, len(logs)),
			fmt.Sprintf("%d of %d", mine, team), d.Category()),
	}, ""), nil
}
