package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/stitts-dev/nfl-edge/internal/models"
	"github.com/stitts-dev/nfl-edge/internal/providers"
)

// JobWarmCache is the id of the upstream prefetch job.
const JobWarmCache = "cache_warming"

type WeekSchedule interface {
	CurrentWeek(ctx context.Context) (int, error)
	Games(ctx context.Context, week int) ([]models.Game, error)
}

type TeamLookup interface {
	Team(ctx context.Context, abbreviation string) (*models.TeamInfo, error)
}

type ForecastFetcher interface {
	Forecast(ctx context.Context, team string, loc models.Location, kickoff time.Time) (*models.WeatherConditions, error)
}

type LineFetcher interface {
	GameLine(ctx context.Context, season, week int, home, away string) (*models.GameLine, error)
}

type BreakerState interface {
	GetState(service string) gobreaker.State
}

// JobInfo represents information about a scheduled job
type JobInfo struct {
	ID         string        `json:"id"`
	Name       string        `json:"name"`
	Schedule   string        `json:"schedule"`
	LastRun    time.Time     `json:"last_run"`
	NextRun    time.Time     `json:"next_run"`
	Status     string        `json:"status"`
	RunCount   int           `json:"run_count"`
	ErrorCount int           `json:"error_count"`
	LastError  string        `json:"last_error,omitempty"`
	Duration   time.Duration `json:"duration"`
	IsEnabled  bool          `json:"is_enabled"`
}

// WarmStats counts what one warming pass fetched.
type WarmStats struct {
	Week      int `json:"week"`
	Games     int `json:"games"`
	Forecasts int `json:"forecasts"`
	Lines     int `json:"lines"`
	Skipped   int `json:"skipped"`
	Errors    int `json:"errors"`
}

type WarmerOptions struct {
	Season   int
	Interval string // cron "@every" duration, e.g. "30m"
}

// CacheWarmer prefetches weather and betting lines for the current week so
// analyses hit the provider caches instead of the upstream APIs.
type CacheWarmer struct {
	schedule WeekSchedule
	teams    TeamLookup
	weather  ForecastFetcher
	lines    LineFetcher
	breakers BreakerState
	season   int
	interval string
	logger   *logrus.Logger

	cron      *cron.Cron
	ctx       context.Context
	cancel    context.CancelFunc
	mu        sync.RWMutex
	jobs      map[string]JobInfo
	lastStats *WarmStats
	isRunning bool
}

func NewCacheWarmer(
	schedule WeekSchedule,
	teams TeamLookup,
	weather ForecastFetcher,
	lines LineFetcher,
	breakers BreakerState,
	opts WarmerOptions,
	logger *logrus.Logger,
) *CacheWarmer {
	ctx, cancel := context.WithCancel(context.Background())

	interval := opts.Interval
	if interval == "" {
		interval = "30m"
	}

	return &CacheWarmer{
		schedule: schedule,
		teams:    teams,
		weather:  weather,
		lines:    lines,
		breakers: breakers,
		season:   opts.Season,
		interval: interval,
		logger:   logger,
		cron:     cron.New(cron.WithLogger(cron.VerbosePrintfLogger(logger))),
		ctx:      ctx,
		cancel:   cancel,
		jobs: map[string]JobInfo{
			JobWarmCache: {ID: JobWarmCache, Name: "Weather and odds prefetch", Status: "idle", IsEnabled: true},
		},
	}
}

// Start schedules the warming job
func (w *CacheWarmer) Start() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.isRunning {
		return fmt.Errorf("cache warmer is already running")
	}

	w.logger.WithField("component", "cache_warmer").Info("Starting cache warmer")

	schedule := "@every " + w.interval
	if err := w.addJob(JobWarmCache, schedule); err != nil {
		return fmt.Errorf("failed to schedule jobs: %w", err)
	}

	w.cron.Start()
	w.isRunning = true

	w.logger.WithField("component", "cache_warmer").Info("Cache warmer started successfully")
	return nil
}

// addJob registers the cron entry; callers hold w.mu.
func (w *CacheWarmer) addJob(id, schedule string) error {
	entryID, err := w.cron.AddFunc(schedule, func() {
		if _, err := w.runJob(w.ctx, id); err != nil {
			w.logger.WithError(err).WithField("job_id", id).Debug("Scheduled warm finished with error")
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add job %s: %w", id, err)
	}

	var nextRun time.Time
	for _, entry := range w.cron.Entries() {
		if entry.ID == entryID {
			nextRun = entry.Next
			break
		}
	}

	job := w.jobs[id]
	job.Schedule = schedule
	job.NextRun = nextRun
	job.Status = "scheduled"
	w.jobs[id] = job

	w.logger.WithFields(logrus.Fields{
		"component": "cache_warmer",
		"job_id":    id,
		"job_name":  job.Name,
		"schedule":  schedule,
		"next_run":  nextRun,
	}).Info("Scheduled job added")

	return nil
}

// WarmNow runs one warming pass immediately and records it like a scheduled run.
func (w *CacheWarmer) WarmNow(ctx context.Context) (WarmStats, error) {
	return w.runJob(ctx, JobWarmCache)
}

// runJob executes a job with panic recovery and status bookkeeping
func (w *CacheWarmer) runJob(ctx context.Context, id string) (stats WarmStats, err error) {
	w.mu.Lock()
	job, exists := w.jobs[id]
	if !exists {
		w.mu.Unlock()
		return WarmStats{}, fmt.Errorf("job %s not found", id)
	}
	if !job.IsEnabled {
		w.mu.Unlock()
		return WarmStats{}, fmt.Errorf("job %s is disabled", id)
	}
	if job.Status == "running" {
		w.mu.Unlock()
		return WarmStats{}, fmt.Errorf("job %s is already running", id)
	}

	job.Status = "running"
	job.LastRun = time.Now()
	job.RunCount++
	w.jobs[id] = job
	w.mu.Unlock()

	logger := w.logger.WithFields(logrus.Fields{
		"component": "cache_warmer",
		"job_id":    id,
		"run_count": job.RunCount,
	})
	logger.Info("Starting scheduled job")
	startTime := time.Now()

	defer func() {
		if r := recover(); r != nil {
			logger.WithField("panic", r).Error("Job panicked")
			err = fmt.Errorf("panic: %v", r)
			w.updateJobStatus(id, "failed", err.Error(), time.Since(startTime))
		}
	}()

	stats, err = w.warm(ctx)
	duration := time.Since(startTime)

	w.mu.Lock()
	w.lastStats = &stats
	w.mu.Unlock()

	switch {
	case err != nil:
		logger.WithError(err).Error("Job failed")
		w.updateJobStatus(id, "failed", err.Error(), duration)
	case stats.Errors > 0:
		logger.WithFields(logrus.Fields{"duration": duration, "errors": stats.Errors}).Warn("Job completed with upstream errors")
		w.updateJobStatus(id, "completed", fmt.Sprintf("%d upstream errors", stats.Errors), duration)
	default:
		logger.WithField("duration", duration).Info("Job completed successfully")
		w.updateJobStatus(id, "completed", "", duration)
	}

	return stats, err
}

func (w *CacheWarmer) updateJobStatus(id, status, errorMsg string, duration time.Duration) {
	w.mu.Lock()
	defer w.mu.Unlock()

	job, exists := w.jobs[id]
	if !exists {
		return
	}

	job.Status = status
	job.Duration = duration
	if errorMsg != "" {
		job.ErrorCount++
		job.LastError = errorMsg
	}

	for _, entry := range w.cron.Entries() {
		if !entry.Next.IsZero() {
			job.NextRun = entry.Next
			break
		}
	}

	w.jobs[id] = job
}

// warm prefetches every game of the current week. Upstream failures are
// counted, not returned; only schedule lookups abort the pass.
func (w *CacheWarmer) warm(ctx context.Context) (WarmStats, error) {
	var stats WarmStats

	week, err := w.schedule.CurrentWeek(ctx)
	if err != nil {
		return stats, fmt.Errorf("failed to determine current week: %w", err)
	}
	stats.Week = week

	games, err := w.schedule.Games(ctx, week)
	if err != nil {
		return stats, err
	}
	stats.Games = len(games)

	for _, game := range games {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		w.warmForecast(ctx, game, &stats)
		w.warmLine(ctx, week, game, &stats)
	}

	return stats, nil
}

func (w *CacheWarmer) warmForecast(ctx context.Context, game models.Game, stats *WarmStats) {
	if w.weather == nil || game.Kickoff == nil || w.breakerOpen(providers.ServiceOpenWeather) {
		stats.Skipped++
		return
	}

	venue, err := w.teams.Team(ctx, game.HomeTeam)
	if err != nil {
		w.countError(err, stats, "team", game)
		return
	}
	if venue.Dome {
		stats.Skipped++
		return
	}

	if _, err := w.weather.Forecast(ctx, game.HomeTeam, venue.Location(), *game.Kickoff); err != nil {
		w.countError(err, stats, "forecast", game)
		return
	}
	stats.Forecasts++
}

func (w *CacheWarmer) warmLine(ctx context.Context, week int, game models.Game, stats *WarmStats) {
	if w.lines == nil || w.breakerOpen(providers.ServiceOdds) {
		stats.Skipped++
		return
	}

	if _, err := w.lines.GameLine(ctx, w.season, week, game.HomeTeam, game.AwayTeam); err != nil {
		w.countError(err, stats, "odds", game)
		return
	}
	stats.Lines++
}

func (w *CacheWarmer) countError(err error, stats *WarmStats, source string, game models.Game) {
	if errors.Is(err, models.ErrNoData) {
		stats.Skipped++
		return
	}
	stats.Errors++
	w.logger.WithError(err).WithFields(logrus.Fields{
		"component": "cache_warmer",
		"source":    source,
		"home":      game.HomeTeam,
		"away":      game.AwayTeam,
	}).Warn("Prefetch failed")
}

func (w *CacheWarmer) breakerOpen(service string) bool {
	return w.breakers != nil && w.breakers.GetState(service) == gobreaker.StateOpen
}

// GetStatus returns the current status of the cache warmer
func (w *CacheWarmer) GetStatus() map[string]interface{} {
	w.mu.RLock()
	defer w.mu.RUnlock()

	jobs := make(map[string]JobInfo, len(w.jobs))
	for k, v := range w.jobs {
		jobs[k] = v
	}

	return map[string]interface{}{
		"is_running":   w.isRunning,
		"jobs":         jobs,
		"cron_entries": len(w.cron.Entries()),
		"last_warm":    w.lastStats,
	}
}

// GetJobs returns information about all jobs
func (w *CacheWarmer) GetJobs() map[string]JobInfo {
	w.mu.RLock()
	defer w.mu.RUnlock()

	jobs := make(map[string]JobInfo, len(w.jobs))
	for k, v := range w.jobs {
		jobs[k] = v
	}
	return jobs
}

// Stop stops the cron scheduler and cancels in-flight scheduled runs
func (w *CacheWarmer) Stop() error {
	w.mu.Lock()
	running := w.isRunning
	w.isRunning = false
	w.mu.Unlock()

	w.cancel()
	if !running {
		return nil
	}

	w.logger.WithField("component", "cache_warmer").Info("Stopping cache warmer")

	ctx := w.cron.Stop()
	select {
	case <-ctx.Done():
		w.logger.WithField("component", "cache_warmer").Info("Cron scheduler stopped gracefully")
	case <-time.After(5 * time.Second):
		w.logger.WithField("component", "cache_warmer").Warn("Cron scheduler stop timed out")
	}

	w.logger.WithField("component", "cache_warmer").Info("Cache warmer stopped")
	return nil
}
