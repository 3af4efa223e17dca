package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

type RevengeDetector struct {
	history CareerSource
}

func NewRevengeDetector(history CareerSource) *RevengeDetector {
	return &RevengeDetector{history: history}
}

func (d *RevengeDetector) Category() string { return edge.CategoryRevenge }

func (d *RevengeDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	if edge.NormalizePosition(player.Position) == edge.PositionDST {
		return edge.NotApplicable(), nil
	}

	teams, err := d.history.FormerTeams(ctx, player.ID)
	if err != nil {
		return noDataOr(err, "No career history")
	}

	for _, t := range teams {
		if strings.EqualFold(t, game.Opponent) {
			return result([]edge.Signal{
				edge.NewSignal(edge.SignalRevengeGame, player, week, 1.0, 40,
					fmt.Sprintf("Revenge game vs former team %s", game.Opponent),
					"Narrative edge only", d.Category()),
			}, ""), nil
		}
	}
	return edge.Empty("No history with opponent"), nil
}
