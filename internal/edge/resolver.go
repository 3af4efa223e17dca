package edge

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNoTeamAssigned  = errors.New("player has no team assigned")
	ErrNoScheduledGame = errors.New("team has no scheduled game")
)

// ResolutionError explains why a request could not be turned into a game
// context. It matches ErrPlayerNotFound, ErrNoTeamAssigned or
// ErrNoScheduledGame through errors.Is.
type ResolutionError struct {
	Kind     error
	Identity string
	Team     string
	Week     int
}

func (e *ResolutionError) Error() string {
	if errors.Is(e.Kind, ErrNoScheduledGame) {
		return fmt.Sprintf("%s: %s in week %d (bye week?)", e.Kind, e.Team, e.Week)
	}
	return fmt.Sprintf("%s: %q", e.Kind, e.Identity)
}

func (e *ResolutionError) Unwrap() error {
	return e.Kind
}

// PlayerDirectory resolves a name or id to a player. Unknown identities are
// reported with an error wrapping ErrPlayerNotFound.
type PlayerDirectory interface {
	ResolvePlayer(ctx context.Context, identity string) (*Player, error)
}

// ScheduledGame is one team's entry in a week's schedule. Kickoff is nil when
// the schedule has not published a time yet.
type ScheduledGame struct {
	Opponent string
	IsHome   bool
	Kickoff  *time.Time
}

// Schedule exposes the weekly schedule keyed by team abbreviation.
type Schedule interface {
	GetSchedule(ctx context.Context, week int) (map[string]ScheduledGame, error)
	CurrentWeek(ctx context.Context) (int, error)
}

// Resolution is the output of a successful Resolve.
type Resolution struct {
	Player Player
	Game   GameContext
	Week   int
}

// Resolver turns a player identity and optional week into a game context.
type Resolver struct {
	players  PlayerDirectory
	schedule Schedule
	now      func() time.Time
}

func NewResolver(players PlayerDirectory, schedule Schedule) *Resolver {
	return &Resolver{
		players:  players,
		schedule: schedule,
		now:      time.Now,
	}
}

// WithClock replaces the clock used when the schedule omits a kickoff time.
func (r *Resolver) WithClock(now func() time.Time) *Resolver {
	r.now = now
	return r
}

// Resolve looks up the player, the target week (the schedule's current week
// when week is nil) and that week's matchup. A missing kickoff time falls back
// to now.
func (r *Resolver) Resolve(ctx context.Context, identity string, week *int) (Resolution, error) {
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return Resolution{}, &ResolutionError{Kind: ErrPlayerNotFound, Identity: identity}
	}

	player, err := r.players.ResolvePlayer(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrPlayerNotFound) {
			return Resolution{}, &ResolutionError{Kind: ErrPlayerNotFound, Identity: identity}
		}
		return Resolution{}, fmt.Errorf("resolve player %q: %w", identity, err)
	}
	if player == nil {
		return Resolution{}, &ResolutionError{Kind: ErrPlayerNotFound, Identity: identity}
	}

	resolved := *player
	resolved.Position = NormalizePosition(resolved.Position)
	resolved.Team = strings.ToUpper(strings.TrimSpace(resolved.Team))
	if resolved.Team == "" {
		return Resolution{}, &ResolutionError{Kind: ErrNoTeamAssigned, Identity: identity}
	}

	targetWeek, err := r.targetWeek(ctx, week)
	if err != nil {
		return Resolution{}, err
	}

	games, err := r.schedule.GetSchedule(ctx, targetWeek)
	if err != nil {
		return Resolution{}, fmt.Errorf("load schedule for week %d: %w", targetWeek, err)
	}

	scheduled, ok := games[resolved.Team]
	if !ok {
		return Resolution{}, &ResolutionError{
			Kind:     ErrNoScheduledGame,
			Identity: identity,
			Team:     resolved.Team,
			Week:     targetWeek,
		}
	}

	kickoff := r.now().UTC()
	if scheduled.Kickoff != nil && !scheduled.Kickoff.IsZero() {
		kickoff = scheduled.Kickoff.UTC()
	}

	return Resolution{
		Player: resolved,
		Game: GameContext{
			Team:     resolved.Team,
			Opponent: strings.ToUpper(scheduled.Opponent),
			IsHome:   scheduled.IsHome,
			Kickoff:  kickoff,
		},
		Week: targetWeek,
	}, nil
}

func (r *Resolver) targetWeek(ctx context.Context, week *int) (int, error) {
	if week != nil {
		if *week < 1 {
			return 0, fmt.Errorf("invalid week %d", *week)
		}
		return *week, nil
	}
	current, err := r.schedule.CurrentWeek(ctx)
	if err != nil {
		return 0, fmt.Errorf("determine current week: %w", err)
	}
	return current, nil
}
