// Package config contains the PasteBridge service configuration.
package config

import (
	"context"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"go.uber.org/zap"

	"pastebridge/pkg/logger"
)

// Log and error messages.
const (
	LogLoadingConfig    = "Loading PasteBridge service configuration"
	LogConfigLoaded     = "Configuration loaded successfully"
	ErrFailedLoadConfig = "Failed to load configuration"
)

// Config represents the full application configuration.
type Config struct {
	HTTP         HTTPConfig         `yaml:"http"`
	Postgres     PostgresConfig     `yaml:"postgres"`
	Redis        RedisConfig        `yaml:"redis"`
	JWT          JWTConfig          `yaml:"jwt"`
	Tiers        TierConfig         `yaml:"tiers"`
	RateLimit    RateLimitConfig    `yaml:"rate_limit"`
	Cleanup      CleanupConfig      `yaml:"cleanup"`
	Integrations IntegrationsConfig `yaml:"integrations"`
	Logging      LoggingConfig      `yaml:"logging"`
	Shutdown     ShutdownConfig     `yaml:"shutdown"`
}

// Load reads the configuration from environment variables.
func Load(ctx context.Context) (*Config, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogLoadingConfig)

	var cfg Config
	err := cleanenv.ReadEnv(&cfg)
	if err != nil {
		log.Error(ctx, ErrFailedLoadConfig, zap.Error(err))
		return nil, fmt.Errorf("%s: %w", ErrFailedLoadConfig, err)
	}

	log.Info(ctx, LogConfigLoaded,
		zap.String("http_host", cfg.HTTP.Host),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("postgres_host", cfg.Postgres.Host),
		zap.Int("postgres_port", cfg.Postgres.Port),
		zap.Bool("redis_enabled", cfg.Redis.Enabled),
		zap.String("log_level", cfg.Logging.Level),
		zap.String("log_mode", cfg.Logging.Mode),
		zap.Duration("cleanup_interval", cfg.Cleanup.Interval),
		zap.Int("shutdown_timeout_seconds", cfg.Shutdown.Timeout))

	return &cfg, nil
}
