package config

import (
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	HTTPAddr string     `env:"HTTP_ADDR" envDefault:":8080"`
	DBPath   string     `env:"DB_PATH" envDefault:"data/quizroom.db"`
	LogLevel slog.Level `env:"LOG_LEVEL" envDefault:"INFO"`
	SPADir   string     `env:"SPA_DIR" envDefault:""`

	// DefaultMode seeds rooms that are referenced before an explicit
	// create supplies a mode.
	DefaultMode string `env:"DEFAULT_MODE" envDefault:"serious"`

	HostEmail    string `env:"HOST_EMAIL" envDefault:"host@quizroom.local"`
	HostPassword string `env:"HOST_PASSWORD" envDefault:"changeme"`
}

func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parsing environment: %w", err)
	}
	return &cfg, nil
}
