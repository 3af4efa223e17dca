package edge

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

const (
	DefaultDetectorTimeout     = 4 * time.Second
	DefaultDetectorConcurrency = 8

	summaryNoFindings = "No significant findings"
)

type RunnerOptions struct {
	Timeout     time.Duration
	Concurrency int
}

// Runner fans a resolved matchup out to every registered detector.
type Runner struct {
	detectors   []Detector
	categories  []string
	timeout     time.Duration
	concurrency int
	logger      *logrus.Logger
}

// NewRunner builds a runner over a fixed registry. Categories must be unique.
func NewRunner(detectors []Detector, opts RunnerOptions, logger *logrus.Logger) (*Runner, error) {
	if len(detectors) == 0 {
		return nil, errors.New("runner needs at least one detector")
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultDetectorTimeout
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultDetectorConcurrency
	}

	seen := make(map[string]struct{}, len(detectors))
	categories := make([]string, 0, len(detectors))
	for _, d := range detectors {
		if d == nil {
			return nil, errors.New("nil detector in registry")
		}
		cat := d.Category()
		if _, dup := seen[cat]; dup {
			return nil, fmt.Errorf("duplicate detector category %q", cat)
		}
		seen[cat] = struct{}{}
		categories = append(categories, cat)
	}

	return &Runner{
		detectors:   detectors,
		categories:  categories,
		timeout:     opts.Timeout,
		concurrency: opts.Concurrency,
		logger:      logger,
	}, nil
}

// Categories lists detector categories in registration order.
func (r *Runner) Categories() []string {
	out := make([]string, len(r.categories))
	copy(out, r.categories)
	return out
}

// RunAll invokes every detector concurrently and returns exactly one result
// per registered category. Failed, timed out or panicking detectors are
// replaced by an empty result whose summary says the data was unavailable.
func (r *Runner) RunAll(ctx context.Context, player Player, game GameContext, week int) map[string]DetectorResult {
	results := make(map[string]DetectorResult, len(r.detectors))

	var (
		mu  sync.Mutex
		wg  sync.WaitGroup
		sem = make(chan struct{}, r.concurrency)
	)

	for _, d := range r.detectors {
		wg.Add(1)
		go func(d Detector) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := r.runOne(ctx, d, player, game, week)

			mu.Lock()
			results[d.Category()] = res
			mu.Unlock()
		}(d)
	}

	wg.Wait()
	return results
}

type detectorOutcome struct {
	result DetectorResult
	err    error
}

func (r *Runner) runOne(ctx context.Context, d Detector, player Player, game GameContext, week int) DetectorResult {
	start := time.Now()
	dctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan detectorOutcome, 1)
	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				done <- detectorOutcome{err: fmt.Errorf("detector panicked: %v", rec)}
			}
		}()
		res, err := d.Analyze(dctx, player, game, week)
		done <- detectorOutcome{result: res, err: err}
	}()

	entry := logger.WithAnalysisContext(ctx, r.logger, player.ID, week).WithFields(logrus.Fields{
		"component": "detector_runner",
		"detector":  d.Category(),
	})

	var out detectorOutcome
	select {
	case out = <-done:
	case <-dctx.Done():
		out = detectorOutcome{err: dctx.Err()}
	}

	if out.err != nil {
		reason := degradeReason(out.err, r.timeout)
		entry.WithError(out.err).WithField("elapsed", time.Since(start)).Warn("Detector degraded")
		return Empty(fmt.Sprintf("Data unavailable (%s)", reason))
	}

	entry.WithFields(logrus.Fields{
		"signals": len(out.result.Signals),
		"elapsed": time.Since(start),
	}).Debug("Detector completed")

	return stamp(out.result, d.Category(), player, week)
}

func degradeReason(err error, timeout time.Duration) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Sprintf("timed out after %s", timeout)
	case errors.Is(err, context.Canceled):
		return "request cancelled"
	default:
		return "upstream error"
	}
}

// stamp fills provenance fields a detector left blank so every signal in an
// analysis carries subject, week and source.
func stamp(res DetectorResult, category string, player Player, week int) DetectorResult {
	signals := make([]Signal, 0, len(res.Signals))
	for _, s := range res.Signals {
		if s.SubjectID == "" {
			s.SubjectID = player.ID
		}
		if s.Week == 0 {
			s.Week = week
		}
		if s.Source == "" {
			s.Source = category
		}
		if s.Impact == "" {
			s.Impact = ImpactFor(s.Magnitude)
		}
		if s.Timestamp.IsZero() {
			s.Timestamp = time.Now().UTC()
		}
		signals = append(signals, s)
	}

	summary := res.Summary
	if summary == "" {
		summary = summaryNoFindings
	}
	return DetectorResult{Signals: signals, Summary: summary}
}
