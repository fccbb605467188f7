package config

import (
	"fmt"
)

// PostgresConfig holds database connection settings.
type PostgresConfig struct {
	Host           string `yaml:"host" env:"PASTEBRIDGE_POSTGRES_HOST" env-default:"localhost"`
	Port           int    `yaml:"port" env:"PASTEBRIDGE_POSTGRES_PORT" env-default:"5432"`
	User           string `yaml:"user" env:"PASTEBRIDGE_POSTGRES_USER" env-default:"postgres"`
	Password       string `yaml:"password" env:"PASTEBRIDGE_POSTGRES_PASSWORD" env-default:"postgres"`
	Database       string `yaml:"database" env:"PASTEBRIDGE_POSTGRES_DB" env-default:"pastebridge"`
	MinConn        int    `yaml:"min_conn" env:"PASTEBRIDGE_POSTGRES_MIN_CONN" env-default:"1"`
	MaxConn        int    `yaml:"max_conn" env:"PASTEBRIDGE_POSTGRES_MAX_CONN" env-default:"10"`
	MigrationsPath string `yaml:"migrations_path" env:"PASTEBRIDGE_POSTGRES_MIGRATIONS" env-default:"file://migrations"`
}

// GetDSN returns the PostgreSQL connection string.
func (p *PostgresConfig) GetDSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		p.Host, p.Port, p.User, p.Password, p.Database)
}

// GetConnectionURL returns the URL form of the connection string used by
// the migration runner.
func (p *PostgresConfig) GetConnectionURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}
