package config

import (
	"fmt"
	"time"
)

// RedisConfig holds Redis connection settings. Redis backs the shared
// rate-limit window; when disabled the limiter falls back to a
// process-local store.
type RedisConfig struct {
	Enabled     bool          `yaml:"enabled" env:"PASTEBRIDGE_REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"PASTEBRIDGE_REDIS_HOST" env-default:"localhost"`
	Port        int           `yaml:"port" env:"PASTEBRIDGE_REDIS_PORT" env-default:"6379"`
	Password    string        `yaml:"password" env:"PASTEBRIDGE_REDIS_PASSWORD" env-default:""`
	DB          int           `yaml:"db" env:"PASTEBRIDGE_REDIS_DB" env-default:"0"`
	PoolSize    int           `yaml:"pool_size" env:"PASTEBRIDGE_REDIS_POOL_SIZE" env-default:"10"`
	DialTimeout time.Duration `yaml:"dial_timeout" env:"PASTEBRIDGE_REDIS_DIAL_TIMEOUT" env-default:"5s"`
	ReadTimeout time.Duration `yaml:"read_timeout" env:"PASTEBRIDGE_REDIS_READ_TIMEOUT" env-default:"3s"`
}

// GetAddress returns the Redis address in host:port form.
func (c *RedisConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
