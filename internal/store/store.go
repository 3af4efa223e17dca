package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/stitts-dev/nfl-edge/internal/edge"
	"github.com/stitts-dev/nfl-edge/internal/models"
	"github.com/stitts-dev/nfl-edge/pkg/database"
)

// kickoffGrace keeps a week "current" through Monday night.
const kickoffGrace = 12 * time.Hour

// Store is the gorm-backed source for players, schedule and the historical
// data detectors read.
type Store struct {
	db           *database.DB
	season       int
	weekOverride int
	now          func() time.Time
}

type Options struct {
	Season int
	// CurrentWeek pins the current week; 0 derives it from the schedule.
	CurrentWeek int
}

func New(db *database.DB, opts Options) *Store {
	return &Store{
		db:           db,
		season:       opts.Season,
		weekOverride: opts.CurrentWeek,
		now:          time.Now,
	}
}

// Season is the season this store answers for.
func (s *Store) Season() int {
	return s.season
}

// ResolvePlayer matches a numeric id, then an external id, then a
// case-insensitive name.
func (s *Store) ResolvePlayer(ctx context.Context, identity string) (*edge.Player, error) {
	identity = strings.TrimSpace(identity)
	db := s.db.WithContext(ctx)

	var p models.Player
	if id, err := strconv.ParseUint(identity, 10, 64); err == nil {
		err := db.First(&p, uint(id)).Error
		if err == nil {
			return toEdgePlayer(p), nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load player %d: %w", id, err)
		}
	}

	err := db.Where("external_id = ?", identity).First(&p).Error
	if err == nil {
		return toEdgePlayer(p), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to load player by external id: %w", err)
	}

	err = db.Where("LOWER(name) = ?", strings.ToLower(identity)).
		Order("updated_at DESC").
		First(&p).Error
	if err == nil {
		return toEdgePlayer(p), nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %q", edge.ErrPlayerNotFound, identity)
	}
	return nil, fmt.Errorf("failed to load player by name: %w", err)
}

func toEdgePlayer(p models.Player) *edge.Player {
	return &edge.Player{
		ID:       strconv.FormatUint(uint64(p.ID), 10),
		Name:     p.Name,
		Position: p.Position,
		Team:     p.Team,
	}
}

// GetSchedule returns the week's games keyed by both participants. Teams on
// bye are absent.
func (s *Store) GetSchedule(ctx context.Context, week int) (map[string]edge.ScheduledGame, error) {
	games, err := s.Games(ctx, week)
	if err != nil {
		return nil, err
	}

	schedule := make(map[string]edge.ScheduledGame, len(games)*2)
	for _, g := range games {
		schedule[g.HomeTeam] = edge.ScheduledGame{Opponent: g.AwayTeam, IsHome: true, Kickoff: g.Kickoff}
		schedule[g.AwayTeam] = edge.ScheduledGame{Opponent: g.HomeTeam, IsHome: false, Kickoff: g.Kickoff}
	}
	return schedule, nil
}

// Games lists the week's games in kickoff order.
func (s *Store) Games(ctx context.Context, week int) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("season = ? AND week = ?", s.season, week).
		Order("kickoff ASC, id ASC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load week %d schedule: %w", week, err)
	}
	return games, nil
}

// CurrentWeek is the configured override, else the earliest week with a game
// that has not kicked off (allowing kickoffGrace), else the last scheduled week.
func (s *Store) CurrentWeek(ctx context.Context) (int, error) {
	if s.weekOverride > 0 {
		return s.weekOverride, nil
	}

	db := s.db.WithContext(ctx).Model(&models.Game{}).Where("season = ?", s.season)

	var upcoming struct{ Week *int }
	err := db.Session(&gorm.Session{}).
		Select("MIN(week) AS week").
		Where("kickoff IS NOT NULL AND kickoff >= ?", s.now().Add(-kickoffGrace)).
		Scan(&upcoming).Error
	if err != nil {
		return 0, fmt.Errorf("failed to determine current week: %w", err)
	}
	if upcoming.Week != nil {
		return *upcoming.Week, nil
	}

	var last struct{ Week *int }
	if err := db.Session(&gorm.Session{}).Select("MAX(week) AS week").Scan(&last).Error; err != nil {
		return 0, fmt.Errorf("failed to determine current week: %w", err)
	}
	if last.Week == nil {
		return 0, fmt.Errorf("no schedule loaded for season %d", s.season)
	}
	return *last.Week, nil
}
