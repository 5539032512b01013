package config

import "github.com/caarlos0/env/v11"

// TestConfig points the store tests at a throwaway Postgres. Each test
// creates its own schema there, so the database can be shared. When the
// DSN is unset the DB-backed tests skip.
type TestConfig struct {
	TestPostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
