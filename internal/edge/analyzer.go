package edge

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

// Analyzer is the public entry point: resolve, fan out, aggregate, recommend.
type Analyzer struct {
	resolver *Resolver
	runner   *Runner
	logger   *logrus.Logger
	now      func() time.Time
}

func NewAnalyzer(resolver *Resolver, runner *Runner, logger *logrus.Logger) *Analyzer {
	return &Analyzer{
		resolver: resolver,
		runner:   runner,
		logger:   logger,
		now:      time.Now,
	}
}

// AnalyzePlayer returns a complete analysis or a resolution error; there is
// no partial result.
func (a *Analyzer) AnalyzePlayer(ctx context.Context, identity string, week *int) (*EdgeAnalysis, error) {
	start := a.now()

	res, err := a.resolver.Resolve(ctx, identity, week)
	if err != nil {
		return nil, err
	}

	results := a.runner.RunAll(ctx, res.Player, res.Game, res.Week)

	summaries := make(map[string]string, len(results))
	var signals []Signal
	for _, category := range a.runner.Categories() {
		r := results[category]
		summaries[category] = r.Summary
		signals = append(signals, r.Signals...)
	}
	if signals == nil {
		signals = []Signal{}
	}

	agg := AggregateSignals(signals)
	recommendation := Recommend(res.Player, signals, agg.OverallImpact, results)

	analysis := &EdgeAnalysis{
		ID:             uuid.NewString(),
		Player:         res.Player,
		Week:           res.Week,
		Game:           res.Game,
		Summaries:      summaries,
		Signals:        signals,
		OverallImpact:  agg.OverallImpact,
		Confidence:     agg.Confidence,
		Recommendation: recommendation,
		GeneratedAt:    a.now().UTC(),
	}

	logger.WithAnalysisContext(ctx, a.logger, res.Player.ID, res.Week).WithFields(logrus.Fields{
		"component":      "analyzer",
		"analysis_id":    analysis.ID,
		"signals":        len(signals),
		"overall_impact": agg.OverallImpact,
		"confidence":     agg.Confidence,
		"elapsed":        a.now().Sub(start),
	}).Info("Edge analysis completed")

	return analysis, nil
}

// Compare analyzes every identity and ranks the results by overall impact.
// Identities that fail resolution are reported in Failures; any other error
// aborts the comparison.
func (a *Analyzer) Compare(ctx context.Context, identities []string, week *int) (*Comparison, error) {
	cmp := &Comparison{
		Week:     week,
		Analyses: make([]EdgeAnalysis, 0, len(identities)),
	}

	for _, identity := range identities {
		analysis, err := a.AnalyzePlayer(ctx, identity, week)
		if err != nil {
			var resErr *ResolutionError
			if errors.As(err, &resErr) {
				cmp.Failures = append(cmp.Failures, ComparisonFailure{Identity: identity, Reason: resErr.Error()})
				continue
			}
			return nil, err
		}
		cmp.Analyses = append(cmp.Analyses, *analysis)
	}

	RankAnalyses(cmp.Analyses)
	return cmp, nil
}
