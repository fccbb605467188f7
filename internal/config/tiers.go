package config

import "time"

// TierConfig holds the notepad lifetime per account tier. The durations
// are product configuration, not derived business logic; premium
// notepads never expire.
type TierConfig struct {
	GuestDays int `yaml:"guest_days" env:"PASTEBRIDGE_TIER_GUEST_DAYS" env-default:"90"`
	UserDays  int `yaml:"user_days" env:"PASTEBRIDGE_TIER_USER_DAYS" env-default:"365"`
}

// GuestLifetime returns the guest notepad lifetime.
func (c *TierConfig) GuestLifetime() time.Duration {
	return time.Duration(c.GuestDays) * 24 * time.Hour
}

// UserLifetime returns the registered-user notepad lifetime.
func (c *TierConfig) UserLifetime() time.Duration {
	return time.Duration(c.UserDays) * 24 * time.Hour
}
