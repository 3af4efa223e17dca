package detectors

import (
	"context"
	"fmt"
	"strings"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
)

// ContractDetector flags contract-year motivation and incentives within one
// game's worth of production.
type ContractDetector struct {
	season    int
	contracts CareerSource
}

func NewContractDetector(season int, contracts CareerSource) *ContractDetector {
	return &ContractDetector{season: season, contracts: contracts}
}

func (d *ContractDetector) Category() string { return edge.CategoryContract }

func (d *ContractDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	if edge.NormalizePosition(player.Position) == edge.PositionDST {
		return edge.NotApplicable(), nil
	}

	contract, err := d.contracts.Contract(ctx, player.ID)
	if err != nil {
		return noDataOr(err, "No contract data")
	}

	var signals []edge.Signal
	if contract.FinalYear == d.season {
		signals = append(signals, edge.NewSignal(edge.SignalContractYear, player, week, 0.5, 40,
			"Contract year", "Playing for the next deal", d.Category()))
	}

	if inc, ok := reachableIncentive(contract); ok {
		signals = append(signals, edge.NewSignal(edge.SignalContractIncentive, player, week, 1.5, 45,
			fmt.Sprintf("%.0f %s from a $%.0f bonus", inc.Remaining(), humanStat(inc.Stat), inc.Value),
			fmt.Sprintf("%.0f of %.0f reached", inc.Progress, inc.Threshold), d.Category()))
	}

	return result(signals, "No contract motivation"), nil
}

// reachableIncentive picks the most valuable unmet incentive whose remaining
// amount is within the player's per-game average.
func reachableIncentive(c *models.Contract) (models.Incentive, bool) {
	var (
		best  models.Incentive
		found bool
	)
	if c.GamesPlayed <= 0 {
		return best, false
	}
	for _, inc := range c.Incentives {
		remaining := inc.Remaining()
		if remaining <= 0 {
			continue
		}
		perGame := inc.Progress / float64(c.GamesPlayed)
		if remaining > perGame {
			continue
		}
		if !found || inc.Value > best.Value {
			best, found = inc, true
		}
	}
	return best, found
}

func humanStat(stat string) string {
	return strings.ReplaceAll(stat, "_", " ")
}
