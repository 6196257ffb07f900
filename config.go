package databus

import (
	"fmt"

	"github.com/dmitrymomot/databus/core/config"
	"github.com/dmitrymomot/databus/core/logger"
)

// Config holds registry settings read from the environment.
type Config struct {
	Discipline Discipline `env:"DATABUS_DISCIPLINE" envDefault:"single"`
	Capacity   int        `env:"DATABUS_CAPACITY" envDefault:"0"`
	Name       string     `env:"DATABUS_NAME"`
	LogLevel   string     `env:"DATABUS_LOG_LEVEL" envDefault:"info"`
	LogFormat  string     `env:"DATABUS_LOG_FORMAT" envDefault:"text"`
}

// LoadConfig reads Config from the environment (and a .env file, if present).
// The result is cached for the lifetime of the process.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewFromConfig creates a registry from cfg. Options are applied after the
// ones derived from cfg, so they can override them.
func NewFromConfig[K comparable, T any](cfg Config, opts ...Option) (*Registry[K, T], error) {
	if _, err := valueFactory[T](cfg.Discipline); err != nil {
		return nil, err
	}

	log, err := logger.FromConfig(cfg.LogLevel, cfg.LogFormat, logger.WithAttr(logger.Component("databus")))
	if err != nil {
		return nil, fmt.Errorf("databus: %w", err)
	}

	all := []Option{
		WithLogger(log),
		WithCapacity(cfg.Capacity),
		WithName(cfg.Name),
	}
	return New[K, T](cfg.Discipline, append(all, opts...)...), nil
}
