package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	RandomSourceRandomOrg = "randomorg"
	RandomSourceLocal     = "local"
)

type RandomConfig struct {
	Source  string        `env:"RANDOM_SOURCE" envDefault:"randomorg"`
	APIKey  string        `env:"RANDOM_ORG_API_KEY"`
	URL     string        `env:"RANDOM_ORG_URL" envDefault:"https://api.random.org/json-rpc/4/invoke"`
	Timeout time.Duration `env:"RANDOM_ORG_TIMEOUT" envDefault:"5s"`
}

func LoadRandom() (RandomConfig, error) {
	var cfg RandomConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.Source = strings.ToLower(strings.TrimSpace(cfg.Source))
	switch cfg.Source {
	case RandomSourceLocal:
	case RandomSourceRandomOrg:
		if strings.TrimSpace(cfg.APIKey) == "" {
			return cfg, fmt.Errorf("RANDOM_ORG_API_KEY is required when RANDOM_SOURCE=%s", RandomSourceRandomOrg)
		}
	default:
		return cfg, fmt.Errorf("unknown RANDOM_SOURCE %q", cfg.Source)
	}
	return cfg, nil
}
