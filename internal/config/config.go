package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the report card tool.
type Config struct {
	AppName        string
	AppEnv         string
	DatabaseDriver string
	DatabasePath   string
	LogLevel       zerolog.Level
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("REPORTCARD")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "Report Card Generator")
	v.SetDefault("app.env", "development")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "student_records.db")
	v.SetDefault("log.level", "warn")

	level, err := zerolog.ParseLevel(strings.ToLower(v.GetString("log.level")))
	if err != nil {
		return Config{}, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := Config{
		AppName:        v.GetString("app.name"),
		AppEnv:         v.GetString("app.env"),
		DatabaseDriver: strings.ToLower(strings.TrimSpace(v.GetString("database.driver"))),
		DatabasePath:   strings.TrimSpace(v.GetString("database.path")),
		LogLevel:       level,
	}

	switch cfg.DatabaseDriver {
	case "sqlite", "postgres":
	default:
		return Config{}, fmt.Errorf("unsupported database driver %q", cfg.DatabaseDriver)
	}

	if cfg.DatabasePath == "" {
		return Config{}, fmt.Errorf("database path must be provided")
	}

	return cfg, nil
}
