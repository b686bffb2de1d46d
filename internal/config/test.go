package config

import "github.com/caarlos0/env/v11"

// TestConfig is read by the Postgres integration tests only.
type TestConfig struct {
	PostgresDSN string `env:"TEST_POSTGRES_DSN,required,notEmpty"`

	// MigrationsDir overrides the search for a migrations/ directory above the
	// test's working directory.
	MigrationsDir string `env:"TEST_MIGRATIONS_DIR"`
}

func LoadTest() (TestConfig, error) {
	var cfg TestConfig
	err := env.Parse(&cfg)
	return cfg, err
}
