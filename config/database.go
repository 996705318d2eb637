package config

import (
	"fmt"

	"github.com/glebarez/sqlite"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"note-network/models"
)

// Database wraps the gorm handle so callers get a single place to migrate
// and to release the underlying connection pool. The backend is decided once
// here, at startup; repositories never branch on it.
type Database struct {
	DB *gorm.DB
}

// InitDB opens the configured backend: PostgreSQL when ENV=production,
// otherwise the embedded SQLite file. Both run single-statement operations
// under driver autocommit.
func InitDB(cfg *Config) (*Database, error) {
	var dialector gorm.Dialector

	if cfg.Env == EnvProduction {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=require",
			cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User,
			cfg.Postgres.Password, cfg.Postgres.Database)
		dialector = postgres.Open(dsn)
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	log.WithField("env", cfg.Env).Info("database connected")

	return &Database{DB: db}, nil
}

// Migrate creates the users and vacancies tables. This is the only schema
// management the system performs.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(&models.User{}); err != nil {
		return fmt.Errorf("failed to migrate User entity: %w", err)
	}
	if err := d.DB.AutoMigrate(&models.Vacancy{}); err != nil {
		return fmt.Errorf("failed to migrate Vacancy entity: %w", err)
	}
	return nil
}

// Close releases the pooled connections. Must run on every exit path.
func (d *Database) Close() error {
	db, err := d.DB.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
