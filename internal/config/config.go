package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"recipebook/internal/database"
)

// Config holds the settings of the web server.
type Config struct {
	AppPort        string
	DatabaseDriver string
	DatabaseDSN    string
	SessionSecret  string
	RabbitMQURL    string // empty disables event publishing
	LogLevel       string
	CookieSecure   bool
}

// SetDefaults registers the default value of every key on v. SESSION_SECRET
// has no default and must be provided.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DATABASE_DRIVER", database.DriverSQLite)
	v.SetDefault("DATABASE_DSN", "recipes.db")
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("COOKIE_SECURE", false)
}

// Load reads the configuration from v, falling back to environment variables
// and defaults.
func Load(v *viper.Viper) (*Config, error) {
	SetDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		AppPort:        v.GetString("APP_PORT"),
		DatabaseDriver: strings.ToLower(strings.TrimSpace(v.GetString("DATABASE_DRIVER"))),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		SessionSecret:  v.GetString("SESSION_SECRET"),
		RabbitMQURL:    strings.TrimSpace(v.GetString("RABBITMQ_URL")),
		LogLevel:       v.GetString("LOG_LEVEL"),
		CookieSecure:   v.GetBool("COOKIE_SECURE"),
	}

	switch cfg.DatabaseDriver {
	case database.DriverSQLite, database.DriverPostgres, database.DriverMemory:
	default:
		return nil, fmt.Errorf("unsupported DATABASE_DRIVER %q", cfg.DatabaseDriver)
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, fmt.Errorf("SESSION_SECRET must be set")
	}
	return cfg, nil
}
