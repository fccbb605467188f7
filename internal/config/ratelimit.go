package config

import "time"

// RateLimitConfig holds sliding-window throttle settings applied to the
// write-heavy public routes.
type RateLimitConfig struct {
	Window        time.Duration `yaml:"window" env:"PASTEBRIDGE_RATE_LIMIT_WINDOW" env-default:"1m"`
	CreateLimit   int           `yaml:"create_limit" env:"PASTEBRIDGE_RATE_LIMIT_CREATE" env-default:"10"`
	AppendLimit   int           `yaml:"append_limit" env:"PASTEBRIDGE_RATE_LIMIT_APPEND" env-default:"60"`
	AuthLimit     int           `yaml:"auth_limit" env:"PASTEBRIDGE_RATE_LIMIT_AUTH" env-default:"20"`
	FeedbackLimit int           `yaml:"feedback_limit" env:"PASTEBRIDGE_RATE_LIMIT_FEEDBACK" env-default:"5"`
}
