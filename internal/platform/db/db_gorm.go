// Package db opens the pooled database connection and provides the
// unit-of-work helper shared by every repository adapter.
package db

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	retryInterval  = 3 * time.Second
	connectTimeout = 60 * time.Second
)

// Config holds the connection and pool settings for the relational store.
type Config struct {
	User     string
	Password string
	Name     string
	Host     string
	Port     string
	Schema   string
	SSLMode  string

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	RunMigrations bool
}

// Opener opens a gorm connection for a DSN. Tests replace it.
type Opener func(dsn string) (*gorm.DB, error)

// LoadConfigFromEnv reads the database settings from environment variables.
func LoadConfigFromEnv() Config {
	return Config{
		User:            os.Getenv("DB_USER"),
		Password:        os.Getenv("DB_PASSWORD"),
		Name:            os.Getenv("DB_NAME"),
		Host:            getenv("DB_HOST", "localhost"),
		Port:            getenv("DB_PORT", "5432"),
		Schema:          getenv("DB_SCHEMA", "financial_tracker"),
		SSLMode:         getenv("DB_SSLMODE", "disable"),
		MaxOpenConns:    atoi(os.Getenv("DB_MAX_OPEN_CONNS"), 10),
		MaxIdleConns:    atoi(os.Getenv("DB_MAX_IDLE_CONNS"), 5),
		ConnMaxLifetime: time.Hour,
		RunMigrations:   os.Getenv("RUN_MIGRATIONS") == "true",
	}
}

// BuildDSN renders cfg as a postgres keyword/value connection string.
// The session runs in UTC so calendar dates compare against UTC-midnight
// parameters; the schema is selected through search_path so queries stay
// unqualified.
func BuildDSN(cfg Config) string {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
	if cfg.Schema != "" {
		dsn += " search_path=" + cfg.Schema
	}
	return dsn
}

// PostgresOpener opens a postgres connection through the pgx driver.
// TranslateError turns driver-specific unique violations into gorm.ErrDuplicatedKey.
func PostgresOpener(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
}

// ConnectWithRetry keeps calling open until it succeeds or timeout elapses.
func ConnectWithRetry(dsn string, timeout time.Duration, open Opener) (*gorm.DB, error) {
	deadline := time.Now().Add(timeout)
	for {
		db, err := open(dsn)
		if err == nil {
			return db, nil
		}
		if time.Now().After(deadline) {
			return nil, fmt.Errorf("db connect failed after %s: %w", timeout, err)
		}
		slog.Warn("db connect failed, retrying", "error", err, "retry_in", retryInterval)
		time.Sleep(retryInterval)
	}
}

// ConfigurePool applies the pool limits of cfg to the underlying *sql.DB.
func ConfigurePool(db *gorm.DB, cfg Config) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("get sql db: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	return nil
}

// OpenDB connects to postgres, tunes the pool and optionally migrates models.
func OpenDB(cfg Config, models ...any) (*gorm.DB, error) {
	db, err := ConnectWithRetry(BuildDSN(cfg), connectTimeout, PostgresOpener)
	if err != nil {
		return nil, err
	}
	if err := ConfigurePool(db, cfg); err != nil {
		return nil, err
	}
	if cfg.RunMigrations && len(models) > 0 {
		if cfg.Schema != "" {
			if err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + cfg.Schema).Error; err != nil {
				return nil, fmt.Errorf("create schema: %w", err)
			}
		}
		if err := db.AutoMigrate(models...); err != nil {
			return nil, fmt.Errorf("migrate: %w", err)
		}
	}
	return db, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoi(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
