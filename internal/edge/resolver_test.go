package edge

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlayerDirectory struct {
	mock.Mock
}

func (m *MockPlayerDirectory) ResolvePlayer(ctx context.Context, identity string) (*Player, error) {
	args := m.Called(ctx, identity)
	if p := args.Get(0); p != nil {
		return p.(*Player), args.Error(1)
	}
	return nil, args.Error(1)
}

type MockSchedule struct {
	mock.Mock
}

func (m *MockSchedule) GetSchedule(ctx context.Context, week int) (map[string]ScheduledGame, error) {
	args := m.Called(ctx, week)
	if g := args.Get(0); g != nil {
		return g.(map[string]ScheduledGame), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockSchedule) CurrentWeek(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func intPtr(v int) *int { return &v }

func TestResolve(t *testing.T) {
	ctx := context.Background()
	kickoff := time.Date(2026, 9, 20, 17, 25, 0, 0, time.UTC)
	frozen := time.Date(2026, 9, 18, 12, 0, 0, 0, time.UTC)

	t.Run("resolves explicit week", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		schedule := new(MockSchedule)
		players.On("ResolvePlayer", ctx, "Josh Allen").
			Return(&Player{ID: "17", Name: "Josh Allen", Position: "qb", Team: "buf"}, nil)
		schedule.On("GetSchedule", ctx, 3).
			Return(map[string]ScheduledGame{"BUF": {Opponent: "mia", IsHome: false, Kickoff: &kickoff}}, nil)

		res, err := NewResolver(players, schedule).Resolve(ctx, "  Josh Allen ", intPtr(3))
		require.NoError(t, err)

		assert.Equal(t, 3, res.Week)
		assert.Equal(t, PositionQB, res.Player.Position)
		assert.Equal(t, "BUF", res.Player.Team)
		assert.Equal(t, GameContext{Team: "BUF", Opponent: "MIA", IsHome: false, Kickoff: kickoff}, res.Game)
		schedule.AssertNotCalled(t, "CurrentWeek", mock.Anything)
		players.AssertExpectations(t)
		schedule.AssertExpectations(t)
	})

	t.Run("defaults to current week", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		schedule := new(MockSchedule)
		players.On("ResolvePlayer", ctx, "17").Return(&Player{ID: "17", Position: "QB", Team: "BUF"}, nil)
		schedule.On("CurrentWeek", ctx).Return(7, nil)
		schedule.On("GetSchedule", ctx, 7).
			Return(map[string]ScheduledGame{"BUF": {Opponent: "NE", IsHome: true, Kickoff: &kickoff}}, nil)

		res, err := NewResolver(players, schedule).Resolve(ctx, "17", nil)
		require.NoError(t, err)
		assert.Equal(t, 7, res.Week)
		assert.True(t, res.Game.IsHome)
	})

	t.Run("missing kickoff falls back to now", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		schedule := new(MockSchedule)
		players.On("ResolvePlayer", ctx, "17").Return(&Player{ID: "17", Position: "QB", Team: "BUF"}, nil)
		schedule.On("GetSchedule", ctx, 2).
			Return(map[string]ScheduledGame{"BUF": {Opponent: "NYJ", IsHome: true}}, nil)

		res, err := NewResolver(players, schedule).
			WithClock(func() time.Time { return frozen }).
			Resolve(ctx, "17", intPtr(2))
		require.NoError(t, err)
		assert.Equal(t, frozen, res.Game.Kickoff)
	})

	t.Run("unknown player", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		schedule := new(MockSchedule)
		players.On("ResolvePlayer", ctx, "Nobody").
			Return(nil, fmt.Errorf("lookup: %w", ErrPlayerNotFound))

		_, err := NewResolver(players, schedule).Resolve(ctx, "Nobody", intPtr(1))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrPlayerNotFound))

		var resErr *ResolutionError
		require.True(t, errors.As(err, &resErr))
		assert.Equal(t, "Nobody", resErr.Identity)
		schedule.AssertNotCalled(t, "GetSchedule", mock.Anything, mock.Anything)
	})

	t.Run("blank identity", func(t *testing.T) {
		_, err := NewResolver(new(MockPlayerDirectory), new(MockSchedule)).Resolve(ctx, "   ", nil)
		assert.True(t, errors.Is(err, ErrPlayerNotFound))
	})

	t.Run("free agent has no team", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		players.On("ResolvePlayer", ctx, "FA").Return(&Player{ID: "9", Position: "WR", Team: " "}, nil)

		_, err := NewResolver(players, new(MockSchedule)).Resolve(ctx, "FA", intPtr(1))
		assert.True(t, errors.Is(err, ErrNoTeamAssigned))
	})

	t.Run("bye week", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		schedule := new(MockSchedule)
		players.On("ResolvePlayer", ctx, "17").Return(&Player{ID: "17", Position: "QB", Team: "BUF"}, nil)
		schedule.On("GetSchedule", ctx, 12).
			Return(map[string]ScheduledGame{"KC": {Opponent: "LV", IsHome: true, Kickoff: &kickoff}}, nil)

		_, err := NewResolver(players, schedule).Resolve(ctx, "17", intPtr(12))
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoScheduledGame))
		assert.Contains(t, err.Error(), "BUF in week 12")
	})

	t.Run("infrastructure errors are not resolution errors", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		players.On("ResolvePlayer", ctx, "17").Return(nil, errors.New("connection refused"))

		_, err := NewResolver(players, new(MockSchedule)).Resolve(ctx, "17", intPtr(1))
		require.Error(t, err)
		var resErr *ResolutionError
		assert.False(t, errors.As(err, &resErr))
	})

	t.Run("rejects non-positive week", func(t *testing.T) {
		players := new(MockPlayerDirectory)
		players.On("ResolvePlayer", ctx, "17").Return(&Player{ID: "17", Position: "QB", Team: "BUF"}, nil)

		_, err := NewResolver(players, new(MockSchedule)).Resolve(ctx, "17", intPtr(0))
		require.Error(t, err)
	})
}
