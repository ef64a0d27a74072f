package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env             string        `mapstructure:"APP_ENV"`          // dev, prod
	HTTPPort        string        `mapstructure:"HTTP_PORT"`        // default 8080
	DataDir         string        `mapstructure:"DATA_DIR"`         // directory holding the CSV tables
	ShutdownTimeout time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"` // graceful shutdown timeout
	FlushOnExit     bool          `mapstructure:"FLUSH_ON_EXIT"`    // write CSV tables back on shutdown
	LogLevel        string        `mapstructure:"LOG_LEVEL"`        // zerolog level name
}

func Load() (Config, error) {
	// Populate the environment from .env if present, then layer viper
	// defaults under it.
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "dev")
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DATA_DIR", "data")
	v.SetDefault("SHUTDOWN_TIMEOUT", 10*time.Second)
	v.SetDefault("FLUSH_ON_EXIT", true)
	v.SetDefault("LOG_LEVEL", "info")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("APP_ENV")
	v.BindEnv("HTTP_PORT")
	v.BindEnv("DATA_DIR")
	v.BindEnv("SHUTDOWN_TIMEOUT")
	v.BindEnv("FLUSH_ON_EXIT")
	v.BindEnv("LOG_LEVEL")

	cfg := Config{}
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.DataDir == "" {
		return Config{}, errors.New("DATA_DIR is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return Config{}, fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", cfg.ShutdownTimeout)
	}

	return cfg, nil
}

func (c Config) IsDev() bool {
	return c.Env == "dev"
}
