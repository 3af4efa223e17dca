package main

import (
	"fmt"
	"log"
	"os"

	"github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/stitts-dev/nfl-edge/internal/models"
	"github.com/stitts-dev/nfl-edge/pkg/config"
	"github.com/stitts-dev/nfl-edge/pkg/database"
)

func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: migrate [up|down|seed]")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}

	db, err := database.NewConnection(cfg.DatabaseURL, cfg.IsDevelopment())
	if err != nil {
		logrus.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	command := os.Args[1]

	switch command {
	case "up":
		if err := runMigrations(db); err != nil {
			logrus.Fatalf("Failed to run migrations: %v", err)
		}
		logrus.Info("Migrations completed successfully")

	case "down":
		if err := dropTables(db); err != nil {
			logrus.Fatalf("Failed to drop tables: %v", err)
		}
		logrus.Info("Tables dropped successfully")

	case "seed":
		n, err := seedTeams(db)
		if err != nil {
			logrus.Fatalf("Failed to seed data: %v", err)
		}
		logrus.Infof("Seeded %d teams", n)

	default:
		log.Fatalf("Unknown command: %s", command)
	}
}

func runMigrations(db *database.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("failed to migrate models: %w", err)
	}

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_games_home ON games(season, home_team)",
		"CREATE INDEX IF NOT EXISTS idx_games_away ON games(season, away_team)",
		"CREATE INDEX IF NOT EXISTS idx_players_lower_name ON players(LOWER(name))",
	}

	for _, index := range indexes {
		if err := db.Exec(index).Error; err != nil {
			return fmt.Errorf("failed to create index: %w", err)
		}
	}

	return nil
}

// dropTables removes every model table, dependents first.
func dropTables(db *database.DB) error {
	all := models.All()
	cascade := ""
	if db.Dialector.Name() == "postgres" {
		cascade = " CASCADE"
	}

	for i := len(all) - 1; i >= 0; i-- {
		table, err := tableName(db.DB, all[i])
		if err != nil {
			return err
		}
		if err := db.Exec("DROP TABLE IF EXISTS " + pq.QuoteIdentifier(table) + cascade).Error; err != nil {
			return fmt.Errorf("failed to drop table %s: %w", table, err)
		}
	}

	return nil
}

func tableName(db *gorm.DB, model interface{}) (string, error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(model); err != nil {
		return "", fmt.Errorf("failed to parse model %T: %w", model, err)
	}
	return stmt.Schema.Table, nil
}

// seedTeams upserts the franchise reference data, so it is safe to rerun.
func seedTeams(db *database.DB) (int, error) {
	teams := make([]models.TeamInfo, len(nflTeams))
	copy(teams, nflTeams)

	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "abbreviation"}},
		UpdateAll: true,
	}).Create(&teams).Error
	if err != nil {
		return 0, fmt.Errorf("failed to seed teams: %w", err)
	}
	return len(teams), nil
}
