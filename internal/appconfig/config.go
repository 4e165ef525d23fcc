// Package appconfig loads process configuration for the metaheuristics HTTP
// server from the environment, following the struct-tag convention of
// github.com/caarlos0/env.
package appconfig

import "github.com/caarlos0/env/v10"

// Config is the server binary's full configuration surface.
type Config struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// DefaultAlgorithm names the engine used when a run request omits one:
	// local_search | grasp | rkga | brkga.
	DefaultAlgorithm string `env:"DEFAULT_ALGORITHM" envDefault:"grasp"`

	DefaultSeed int64 `env:"DEFAULT_SEED" envDefault:"1"`

	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`
}

// Load parses Config from the current environment.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
