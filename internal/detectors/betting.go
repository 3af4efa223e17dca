package detectors

import (
	"context"
	"fmt"
	"math"

	"github.com/stitts-dev/nfl-edge/internal/edge"
)

const (
	shootoutTotal     = 50.0
	lowTotal          = 38.0
	blowoutSpread     = 10.0
	highImpliedPoints = 27.0
	lowImpliedPoints  = 17.0
)

var (
	shootout = positionEffects{
		edge.PositionQB: 1.5, edge.PositionWR: 1.25, edge.PositionTE: 1, edge.PositionRB: 0.75,
		edge.PositionK: 0.5, edge.PositionDST: -1.5,
	}
	lowScoring = positionEffects{
		edge.PositionQB: -1.5, edge.PositionWR: -1.25, edge.PositionTE: -1, edge.PositionRB: -0.75,
		edge.PositionK: -0.5, edge.PositionDST: 1.5,
	}
	blowoutFavorite = positionEffects{
		edge.PositionRB: 1, edge.PositionQB: -0.5, edge.PositionWR: -0.5, edge.PositionTE: -0.5,
		edge.PositionDST: 1,
	}
	blowoutUnderdog = positionEffects{
		edge.PositionRB: -1.5, edge.PositionQB: 0.5, edge.PositionWR: 0.5, edge.PositionTE: 0.5,
		edge.PositionDST: -1,
	}
)

// BettingDetector reads the game line: totals, spread and the team's implied
// points. Defenses are scored on the opponent's implied total.
type BettingDetector struct {
	season int
	lines  LineSource
}

func NewBettingDetector(season int, lines LineSource) *BettingDetector {
	return &BettingDetector{season: season, lines: lines}
}

func (d *BettingDetector) Category() string { return edge.CategoryBetting }

func (d *BettingDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	line, err := d.lines.GameLine(ctx, d.season, week, game.HomeTeam(), game.AwayTeam())
	if err != nil {
		return noDataOr(err, "No betting line posted")
	}

	position := edge.NormalizePosition(player.Position)
	var signals []edge.Signal
	emit := func(t edge.SignalType, m float64, confidence int, short, details string) {
		if m != 0 {
			signals = append(signals, edge.NewSignal(t, player, week, m, confidence, short, details, d.Category()))
		}
	}

	switch {
	case line.Total >= shootoutTotal:
		m, _ := shootout.For(position)
		emit(edge.SignalBettingShootout, m, 65, fmt.Sprintf("Shootout total of %.1f", line.Total),
			"High totals raise the ceiling of every skill player")
	case line.Total <= lowTotal:
		m, _ := lowScoring.For(position)
		emit(edge.SignalBettingLowTotal, m, 65, fmt.Sprintf("Low total of %.1f", line.Total),
			"Books expect a grind-it-out game")
	}

	// teamSpread is negative when the player's team is favored.
	teamSpread := line.HomeSpread
	if !game.IsHome {
		teamSpread = -line.HomeSpread
	}
	if math.Abs(teamSpread) >= blowoutSpread {
		effects, role := blowoutUnderdog, "underdog"
		if teamSpread < 0 {
			effects, role = blowoutFavorite, "favorite"
		}
		// The blowout flag describes the game, so positions without a
		// scoring effect still carry it at zero magnitude.
		m, _ := effects.For(position)
		signals = append(signals, edge.NewSignal(edge.SignalBettingBlowout, player, week, m, 55,
			fmt.Sprintf("%.1f point %s", math.Abs(teamSpread), role),
			"Lopsided games change play calling in the second half", d.Category()))
	}

	homeImplied, awayImplied := line.ImpliedTotals()
	implied := homeImplied
	if !game.IsHome {
		implied = awayImplied
	}
	whose := "Team"
	sign := 1.0
	if position == edge.PositionDST {
		implied = homeImplied + awayImplied - implied
		whose, sign = "Opponent", -1.0
	}
	switch {
	case implied >= highImpliedPoints:
		emit(edge.SignalBettingImpliedTotal, sign*1.5, 60,
			fmt.Sprintf("%s implied for %.1f points", whose, implied), "Vegas projects a productive offense")
	case implied <= lowImpliedPoints:
		emit(edge.SignalBettingImpliedTotal, sign*-1.5, 60,
			fmt.Sprintf("%s implied for %.1f points", whose, implied), "Vegas projects a struggling offense")
	}

	return result(signals, fmt.Sprintf("Total %.1f, spread %+.1f", line.Total, teamSpread)), nil
}
