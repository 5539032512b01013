package config

import "github.com/caarlos0/env/v11"

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty bool   `env:"LOG_PRETTY" envDefault:"false"`

	// SampleEvery keeps one in N events when positive; 0 logs everything.
	SampleEvery int `env:"LOG_SAMPLE_EVERY" envDefault:"0"`

	// File mirrors logs to a size-capped file next to stderr. Empty means
	// stderr only.
	File  string `env:"LOG_FILE"`
	MaxMB int    `env:"LOG_MAX_MB" envDefault:"10"`
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	err := env.Parse(&cfg)
	return cfg, err
}
