package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds service configuration loaded from environment variables.
type Config struct {
	ServerAddr string   `env:"SERVER_ADDR" envDefault:":8080"`
	Database   Database `envPrefix:"DB_"`
}

// Database holds MySQL connection parameters.
type Database struct {
	Server   string `env:"SERVER" envDefault:"127.0.0.1"`
	Port     int    `env:"PORT" envDefault:"3306"`
	Name     string `env:"NAME" envDefault:"AccountAuth"`
	User     string `env:"USER" envDefault:"root"`
	Password string `env:"PASSWORD" envDefault:""`
}

// Load parses configuration from the environment.
func Load() (*Config, error) {
	cfg := Config{}
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}
