package config

import (
	"errors"
	"fmt"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	AuthModeToken   = "token"
	AuthModeSession = "session"
)

type Config struct {
	Env        string
	Port       string
	SecretKey  string
	AuthMode   string
	CORSOrigin string
	SQLitePath string
	Postgres   PostgresConfig
}

type PostgresConfig struct {
	Host     string
	Database string
	User     string
	Password string
	Port     string
}

// Load reads configuration from the environment, after a best-effort .env
// load. Defaults mirror the development setup; production refuses to start
// without a real secret and database coordinates.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found")
	}

	viper.AutomaticEnv()

	viper.SetDefault("ENV", EnvDevelopment)
	viper.SetDefault("PORT", "8000")
	viper.SetDefault("AUTH_MODE", AuthModeToken)
	viper.SetDefault("SQLITE_PATH", "database.db")
	viper.SetDefault("CORS_ORIGIN", "https://note-network-frontend.vercel.app")
	viper.SetDefault("PGPORT", "5432")

	cfg := &Config{
		Env:        viper.GetString("ENV"),
		Port:       viper.GetString("PORT"),
		SecretKey:  viper.GetString("SECRET_KEY"),
		AuthMode:   viper.GetString("AUTH_MODE"),
		CORSOrigin: viper.GetString("CORS_ORIGIN"),
		SQLitePath: viper.GetString("SQLITE_PATH"),
		Postgres: PostgresConfig{
			Host:     viper.GetString("PGHOST"),
			Database: viper.GetString("PGDATABASE"),
			User:     viper.GetString("PGUSER"),
			Password: viper.GetString("PGPASSWORD"),
			Port:     viper.GetString("PGPORT"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.SecretKey == "" {
		log.Warn("SECRET_KEY not set, using development default")
		cfg.SecretKey = devSecretKey
	}

	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error

	if c.AuthMode != AuthModeToken && c.AuthMode != AuthModeSession {
		errs = append(errs, fmt.Errorf("AUTH_MODE must be %q or %q, got %q", AuthModeToken, AuthModeSession, c.AuthMode))
	}

	if c.Env == EnvProduction {
		if c.SecretKey == "" {
			errs = append(errs, errors.New("SECRET_KEY is required in production"))
		}
		for name, value := range map[string]string{
			"PGHOST":     c.Postgres.Host,
			"PGDATABASE": c.Postgres.Database,
			"PGUSER":     c.Postgres.User,
			"PGPASSWORD": c.Postgres.Password,
		} {
			if value == "" {
				errs = append(errs, fmt.Errorf("%s is required in production", name))
			}
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
