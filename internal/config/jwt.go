package config

import "time"

// JWTConfig holds token signing settings.
type JWTConfig struct {
	SecretKey     string `yaml:"secret_key" env:"PASTEBRIDGE_JWT_SECRET_KEY" env-default:"super-secret-key-change-me-in-production"`
	TokenTTL      string `yaml:"token_ttl" env:"PASTEBRIDGE_JWT_TOKEN_TTL" env-default:"720h"`
	ResetTokenTTL string `yaml:"reset_token_ttl" env:"PASTEBRIDGE_RESET_TOKEN_TTL" env-default:"1h"`
	BCryptCost    int    `yaml:"bcrypt_cost" env:"PASTEBRIDGE_BCRYPT_COST" env-default:"10"`
}

// GetTokenTTL returns the access token lifetime.
func (c *JWTConfig) GetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.TokenTTL)
	if err != nil {
		return 720 * time.Hour
	}
	return duration
}

// GetResetTokenTTL returns the password-reset token lifetime.
func (c *JWTConfig) GetResetTokenTTL() time.Duration {
	duration, err := time.ParseDuration(c.ResetTokenTTL)
	if err != nil {
		return time.Hour
	}
	return duration
}
