package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/stitts-dev/nfl-edge/internal/models"
	"github.com/stitts-dev/nfl-edge/internal/providers"
	"github.com/stitts-dev/nfl-edge/pkg/logger"
)

type fakeSchedule struct {
	week  int
	games []models.Game
	err   error
}

func (f *fakeSchedule) CurrentWeek(context.Context) (int, error) {
	return f.week, f.err
}

func (f *fakeSchedule) Games(_ context.Context, week int) ([]models.Game, error) {
	if week != f.week {
		return nil, fmt.Errorf("unexpected week %d", week)
	}
	return f.games, nil
}

type fakeTeams map[string]models.TeamInfo

func (f fakeTeams) Team(_ context.Context, abbr string) (*models.TeamInfo, error) {
	t, ok := f[abbr]
	if !ok {
		return nil, fmt.Errorf("%w: team %s", models.ErrNoData, abbr)
	}
	return &t, nil
}

type fakeWeather struct {
	calls []string
}

func (f *fakeWeather) Forecast(_ context.Context, team string, _ models.Location, _ time.Time) (*models.WeatherConditions, error) {
	f.calls = append(f.calls, team)
	return &models.WeatherConditions{Temperature: 41, WindSpeed: 9}, nil
}

type MockLineFetcher struct {
	mock.Mock
}

func (m *MockLineFetcher) GameLine(ctx context.Context, season, week int, home, away string) (*models.GameLine, error) {
	args := m.Called(ctx, season, week, home, away)
	line, _ := args.Get(0).(*models.GameLine)
	return line, args.Error(1)
}

type fakeBreakers map[string]gobreaker.State

func (f fakeBreakers) GetState(service string) gobreaker.State {
	return f[service]
}

func kickoff(t time.Time) *time.Time { return &t }

func weekFive() *fakeSchedule {
	sunday := time.Date(2026, 10, 11, 17, 0, 0, 0, time.UTC)
	return &fakeSchedule{
		week: 5,
		games: []models.Game{
			{Season: 2026, Week: 5, HomeTeam: "BUF", AwayTeam: "MIA", Kickoff: kickoff(sunday)},
			{Season: 2026, Week: 5, HomeTeam: "DET", AwayTeam: "CHI", Kickoff: kickoff(sunday)},
			{Season: 2026, Week: 5, HomeTeam: "SEA", AwayTeam: "KC"},
		},
	}
}

func teams() fakeTeams {
	return fakeTeams{
		"BUF": {Abbreviation: "BUF", Latitude: 42.77, Longitude: -78.79},
		"DET": {Abbreviation: "DET", Dome: true},
		"SEA": {Abbreviation: "SEA", Latitude: 47.59, Longitude: -122.33},
	}
}

func TestWarmNowCountsEachOutcome(t *testing.T) {
	weather := &fakeWeather{}
	lines := new(MockLineFetcher)
	lines.On("GameLine", mock.Anything, 2026, 5, "BUF", "MIA").Return(&models.GameLine{HomeSpread: -3, Total: 47.5}, nil)
	lines.On("GameLine", mock.Anything, 2026, 5, "DET", "CHI").Return(nil, fmt.Errorf("%w: no line", models.ErrNoData))
	lines.On("GameLine", mock.Anything, 2026, 5, "SEA", "KC").Return(nil, errors.New("upstream 502"))

	w := NewCacheWarmer(weekFive(), teams(), weather, lines, fakeBreakers{}, WarmerOptions{Season: 2026}, logger.Discard())

	stats, err := w.WarmNow(context.Background())
	require.NoError(t, err)

	assert.Equal(t, WarmStats{Week: 5, Games: 3, Forecasts: 1, Lines: 1, Skipped: 3, Errors: 1}, stats)
	assert.Equal(t, []string{"BUF"}, weather.calls, "domes and unscheduled kickoffs are not fetched")
	lines.AssertExpectations(t)

	job := w.GetJobs()[JobWarmCache]
	assert.Equal(t, "completed", job.Status)
	assert.Equal(t, 1, job.RunCount)
	assert.Equal(t, 1, job.ErrorCount)
	assert.Equal(t, "1 upstream errors", job.LastError)

	status := w.GetStatus()
	assert.Equal(t, false, status["is_running"])
	assert.Equal(t, &stats, status["last_warm"])
}

func TestWarmNowSkipsOpenBreakers(t *testing.T) {
	weather := &fakeWeather{}
	lines := new(MockLineFetcher)
	breakers := fakeBreakers{providers.ServiceOdds: gobreaker.StateOpen}

	w := NewCacheWarmer(weekFive(), teams(), weather, lines, breakers, WarmerOptions{Season: 2026}, logger.Discard())

	stats, err := w.WarmNow(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.Forecasts)
	assert.Equal(t, 0, stats.Lines)
	assert.Equal(t, 5, stats.Skipped)
	lines.AssertNotCalled(t, "GameLine", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestWarmNowScheduleFailure(t *testing.T) {
	schedule := &fakeSchedule{err: errors.New("connection refused")}
	w := NewCacheWarmer(schedule, teams(), &fakeWeather{}, new(MockLineFetcher), fakeBreakers{}, WarmerOptions{Season: 2026}, logger.Discard())

	_, err := w.WarmNow(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")

	job := w.GetJobs()[JobWarmCache]
	assert.Equal(t, "failed", job.Status)
	assert.Equal(t, 1, job.ErrorCount)
}

func TestWarmNowCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	weather := &fakeWeather{}
	w := NewCacheWarmer(weekFive(), teams(), weather, new(MockLineFetcher), fakeBreakers{}, WarmerOptions{Season: 2026}, logger.Discard())

	stats, err := w.WarmNow(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 3, stats.Games)
	assert.Empty(t, weather.calls)
}

func TestCacheWarmerStartStop(t *testing.T) {
	w := NewCacheWarmer(weekFive(), teams(), &fakeWeather{}, new(MockLineFetcher), fakeBreakers{}, WarmerOptions{Season: 2026, Interval: "45m"}, logger.Discard())

	require.NoError(t, w.Start())
	assert.Error(t, w.Start(), "second start is rejected")

	job := w.GetJobs()[JobWarmCache]
	assert.Equal(t, "@every 45m", job.Schedule)
	assert.Equal(t, "scheduled", job.Status)
	assert.False(t, job.NextRun.IsZero())
	assert.Equal(t, true, w.GetStatus()["is_running"])

	require.NoError(t, w.Stop())
	assert.Equal(t, false, w.GetStatus()["is_running"])
	require.NoError(t, w.Stop())
}

func TestCacheWarmerRejectsBadInterval(t *testing.T) {
	w := NewCacheWarmer(weekFive(), teams(), &fakeWeather{}, new(MockLineFetcher), fakeBreakers{}, WarmerOptions{Interval: "soon"}, logger.Discard())
	assert.Error(t, w.Start())
}
