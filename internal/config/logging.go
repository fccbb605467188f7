package config

import (
	"pastebridge/pkg/logger"
)

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level string `yaml:"level" env:"PASTEBRIDGE_LOGGER_LEVEL" env-default:"info"`
	Mode  string `yaml:"mode" env:"PASTEBRIDGE_LOGGER_MODE" env-default:"development"`
}

// GetEnvironment maps the mode string to a logger.Environment.
func (l *LoggingConfig) GetEnvironment() logger.Environment {
	if l.Mode == "production" {
		return logger.Production
	}
	return logger.Development
}
