package config

import "time"

// CleanupConfig holds settings for the expired-notepad sweeper.
type CleanupConfig struct {
	Interval time.Duration `yaml:"interval" env:"PASTEBRIDGE_CLEANUP_INTERVAL" env-default:"1h"`
	Backoff  time.Duration `yaml:"backoff" env:"PASTEBRIDGE_CLEANUP_BACKOFF" env-default:"1m"`
}
