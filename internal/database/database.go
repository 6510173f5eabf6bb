// Package database opens the database for the budget engine.
package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/envelope-zero/budget-engine/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Connect opens the SQLite database at dsn, registers the error callbacks
// and migrates the schema.
func Connect(dsn string) (*gorm.DB, error) {
	return Open(sqlite.Open(dsn))
}

// ConnectPostgres opens a PostgreSQL database with the given connection string.
func ConnectPostgres(dsn string) (*gorm.DB, error) {
	return Open(postgres.Open(dsn))
}

// Open opens the database with the dialector, registers the error callbacks
// and migrates the schema.
func Open(dialector gorm.Dialector) (*gorm.DB, error) {
	config := &gorm.Config{
		// Set generated timestamps in UTC
		NowFunc: func() time.Time {
			return time.Now().In(time.UTC)
		},
		Logger: &logger{
			Logger: log.Logger,
		},
	}

	db, err := gorm.Open(dialector, config)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database object: %w", err)
	}

	// Get new connections after one hour
	sqlDB.SetConnMaxLifetime(time.Hour)

	// SQLite only supports one writer. Serializing all access
	// prevents SQLITE_BUSY errors and keeps in-memory databases alive.
	if dialector.Name() == "sqlite" {
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetMaxOpenConns(1)
	}

	err = registerCallbacks(db)
	if err != nil {
		return nil, err
	}

	err = models.Migrate(db)
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Database creates the data directory if needed and opens the database
// configured by the environment.
//
// If host is set, PostgreSQL is used, otherwise the SQLite database at path.
func Database(path string, pg PostgresConfig) (*gorm.DB, error) {
	if pg.Host != "" {
		return ConnectPostgres(pg.DSN())
	}

	if dir := dataDir(path); dir != "" {
		err := os.MkdirAll(dir, os.ModePerm)
		if err != nil {
			return nil, err
		}
	}

	return Connect(fmt.Sprintf("%s?_pragma=foreign_keys(1)", path))
}

// PostgresConfig holds the connection parameters for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN returns the connection string for the configuration.
func (c PostgresConfig) DSN() string {
	port := c.Port
	if port == "" {
		port = "5432"
	}

	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable TimeZone=UTC", c.Host, port, c.User, c.Password, c.Name)
}

func dataDir(path string) string {
	if path == ":memory:" {
		return ""
	}

	dir := filepath.Dir(path)
	if dir == "." {
		return ""
	}

	return dir
}
