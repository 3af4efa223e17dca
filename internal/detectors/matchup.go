package detectors

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/internal/cache"
	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

const (
	minRankedDefenses = 16
	eliteMatchupRank  = 5
	goodMatchupRank   = 10
	toughMatchupRank  = 23
	brutalMatchupRank = 28
)

// MatchupDetector ranks the opponent by fantasy points allowed to the
// player's position. Rank 1 allows the most.
type MatchupDetector struct {
	season   int
	defense  DefenseStatsSource
	cache    cache.Cache
	cacheTTL time.Duration
	logger   *logrus.Logger
}

func NewMatchupDetector(season int, defense DefenseStatsSource, c cache.Cache, ttl time.Duration, log *logrus.Logger) *MatchupDetector {
	d := &MatchupDetector{season: season, defense: defense, cacheTTL: ttl, logger: log}
	if d.logger == nil {
		d.logger = logger.Discard()
	}
	if c != nil {
		d.cache = cache.WithNamespace(c, "matchup")
	}
	if d.cacheTTL <= 0 {
		d.cacheTTL = 6 * time.Hour
	}
	return d
}

func (d *MatchupDetector) Category() string { return edge.CategoryMatchup }

func (d *MatchupDetector) Analyze(ctx context.Context, player edge.Player, game edge.GameContext, week int) (edge.DetectorResult, error) {
	position := edge.NormalizePosition(player.Position)
	ranks, err := d.ranks(ctx, week, position)
	if err != nil {
		return noDataOr(err, "No defensive rankings")
	}
	if len(ranks) < minRankedDefenses {
		return edge.Empty(fmt.Sprintf("Only %d defenses ranked so far", len(ranks))), nil
	}

	rank := 0
	var allowed float64
	for i, r := range ranks {
		if r.Team == game.Opponent {
			rank, allowed = i+1, r.PointsAllowed
			break
		}
	}
	if rank == 0 {
		return edge.Empty(fmt.Sprintf("No defensive data for %s", game.Opponent)), nil
	}

	short := fmt.Sprintf("%s ranks #%d vs %s (%.1f pts/game allowed)", game.Opponent, rank, position, allowed)
	var m float64
	var confidence int
	switch {
	case rank <= eliteMatchupRank:
		m, confidence = 3, 70
	case rank <= goodMatchupRank:
		m, confidence = 1.5, 60
	case rank >= brutalMatchupRank:
		m, confidence = -3, 70
	case rank >= toughMatchupRank:
		m, confidence = -1.5, 60
	default:
		return edge.Empty("Average matchup: " + short), nil
	}

	return result([]edge.Signal{
		edge.NewSignal(edge.SignalMatchupDefense, player, week, m, confidence, short,
			fmt.Sprintf("Season-to-date points allowed across %d defenses", len(ranks)), d.Category()),
	}, ""), nil
}

func (d *MatchupDetector) ranks(ctx context.Context, week int, position string) ([]models.DefenseRank, error) {
	key := cache.DefenseRankKey(d.season, week, position)
	if d.cache != nil {
		var cached []models.DefenseRank
		hit, err := d.cache.Get(ctx, key, &cached)
		switch {
		case err != nil:
			d.log(ctx, err, key).Debug("Rank cache read failed")
		case hit:
			// Rankings for a past week only change on stat corrections.
			if _, err := d.cache.Expire(ctx, key, d.cacheTTL); err != nil {
				d.log(ctx, err, key).Debug("Rank cache refresh failed")
			}
			return cached, nil
		}
	}

	ranks, err := d.defense.DefenseVsPosition(ctx, d.season, week, position)
	if err != nil {
		return nil, err
	}

	if d.cache != nil {
		if err := d.cache.Set(ctx, key, ranks, d.cacheTTL); err != nil {
			d.log(ctx, err, key).Debug("Rank cache write failed")
		}
	}
	return ranks, nil
}

func (d *MatchupDetector) log(ctx context.Context, err error, key string) *logrus.Entry {
	return logger.WithCorrelationID(ctx, d.logger.WithError(err)).WithFields(logrus.Fields{
		"component": "matchup_detector",
		"key":       key,
	})
}
