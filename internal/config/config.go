package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	DatabaseDSN  string        `envconfig:"DB_DSN" required:"true"`
	Address      string        `envconfig:"ADDRESS" default:":8080"`
	LogLevel     string        `envconfig:"LOG_LEVEL" default:"info"`
	StoreTimeout time.Duration `envconfig:"STORE_TIMEOUT" default:"5s"`
}

// Load reads a .env file when present (prod uses real env vars) and
// fills the config from the environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
