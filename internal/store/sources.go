package store

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"

	"github.com/stitts-dev/nfl-edge/internal/models"
)

func parsePlayerID(playerID string) (uint, error) {
	id, err := strconv.ParseUint(playerID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid player id %q: %w", playerID, err)
	}
	return uint(id), nil
}

// Team returns franchise data. Unknown teams wrap models.ErrNoData.
func (s *Store) Team(ctx context.Context, abbreviation string) (*models.TeamInfo, error) {
	var team models.TeamInfo
	err := s.db.WithContext(ctx).First(&team, "abbreviation = ?", strings.ToUpper(abbreviation)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: team %s", models.ErrNoData, abbreviation)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load team %s: %w", abbreviation, err)
	}
	return &team, nil
}

// TeamGames lists a team's games for the season in week order.
func (s *Store) TeamGames(ctx context.Context, season int, team string) ([]models.Game, error) {
	var games []models.Game
	err := s.db.WithContext(ctx).
		Where("season = ? AND (home_team = ? OR away_team = ?)", season, team, team).
		Order("week ASC").
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s games: %w", team, err)
	}
	return games, nil
}

func (s *Store) InjuryReports(ctx context.Context, season, week int, team string) ([]models.InjuryReport, error) {
	var reports []models.InjuryReport
	err := s.db.WithContext(ctx).
		Where("season = ? AND week = ? AND team = ?", season, week, team).
		Find(&reports).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load %s injury report: %w", team, err)
	}
	return reports, nil
}

// DefenseVsPosition averages per-game points each defense allowed to position
// in the weeks before beforeWeek, worst defense first.
func (s *Store) DefenseVsPosition(ctx context.Context, season, beforeWeek int, position string) ([]models.DefenseRank, error) {
	var rows []models.DefenseRank
	err := s.db.WithContext(ctx).
		Model(&models.DefenseVsPosition{}).
		Select("team, AVG(points_allowed) AS points_allowed, COUNT(*) AS games").
		Where("season = ? AND week < ? AND position = ?", season, beforeWeek, position).
		Group("team").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load defense vs %s: %w", position, err)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].PointsAllowed != rows[j].PointsAllowed {
			return rows[i].PointsAllowed > rows[j].PointsAllowed
		}
		return rows[i].Team < rows[j].Team
	})
	return rows, nil
}

// GameLogs returns the player's games from the previous season and the
// current season before beforeWeek, oldest first.
func (s *Store) GameLogs(ctx context.Context, playerID string, season, beforeWeek int) ([]models.PlayerGameLog, error) {
	id, err := parsePlayerID(playerID)
	if err != nil {
		return nil, err
	}

	var logs []models.PlayerGameLog
	err = s.db.WithContext(ctx).
		Where("player_id = ? AND (season = ? OR (season = ? AND week < ?))", id, season-1, season, beforeWeek).
		Order("season ASC, week ASC").
		Find(&logs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load game logs: %w", err)
	}
	return logs, nil
}

// Contract returns the player's contract. Players without one wrap
// models.ErrNoData.
func (s *Store) Contract(ctx context.Context, playerID string) (*models.Contract, error) {
	id, err := parsePlayerID(playerID)
	if err != nil {
		return nil, err
	}

	var contract models.Contract
	err = s.db.WithContext(ctx).Where("player_id = ?", id).First(&contract).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: contract for player %s", models.ErrNoData, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load contract: %w", err)
	}
	return &contract, nil
}

func (s *Store) FormerTeams(ctx context.Context, playerID string) ([]string, error) {
	id, err := parsePlayerID(playerID)
	if err != nil {
		return nil, err
	}

	var p models.Player
	err = s.db.WithContext(ctx).Select("id", "former_teams").First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: player %s", models.ErrNoData, playerID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load former teams: %w", err)
	}
	return []string(p.FormerTeams), nil
}
