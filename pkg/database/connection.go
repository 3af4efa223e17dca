package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

type DB struct {
	*gorm.DB
}

// NewConnection opens Postgres, or SQLite when the URL uses the sqlite:// scheme
// (local runs and tests).
func NewConnection(databaseURL string, isDevelopment bool) (*DB, error) {
	if strings.HasPrefix(databaseURL, sqlitePrefix) {
		return NewSQLiteConnection(strings.TrimPrefix(databaseURL, sqlitePrefix), isDevelopment)
	}

	db, err := gorm.Open(postgres.Open(databaseURL), gormConfig(isDevelopment))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	// Connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logrus.Info("Database connection established successfully")

	return &DB{db}, nil
}

// NewSQLiteConnection opens a SQLite database. Pass ":memory:" for a throwaway database.
func NewSQLiteConnection(dsn string, isDevelopment bool) (*DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), gormConfig(isDevelopment))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// a second connection to :memory: would see an empty database
	sqlDB.SetMaxOpenConns(1)

	return &DB{db}, nil
}

func gormConfig(isDevelopment bool) *gorm.Config {
	logLevel := logger.Error
	if isDevelopment {
		logLevel = logger.Info
	}

	return &gorm.Config{
		Logger: NewGormLogger(logrus.StandardLogger(), logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	}
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (db *DB) HealthCheck() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	return nil
}
