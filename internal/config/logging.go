package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const defaultLogMaxMB = 10

// LogConfig drives logging.Init. File output is optional; when LOG_FILE is set
// the file rolls over once it would pass LOG_MAX_MB and LOG_KEEP rolled files
// are kept beside it as ledger.log.1, ledger.log.2 and so on.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
	Keep        int    `env:"LOG_KEEP" envDefault:"1"`
}

// MaxBytes is the rollover threshold. Zero or negative MaxMB means the default.
func (c LogConfig) MaxBytes() int64 {
	mb := c.MaxMB
	if mb <= 0 {
		mb = defaultLogMaxMB
	}
	return int64(mb) << 20
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	cfg.File = strings.TrimSpace(cfg.File)
	if cfg.MaxMB < 0 {
		return cfg, fmt.Errorf("LOG_MAX_MB must not be negative, got %d", cfg.MaxMB)
	}
	if cfg.Keep < 0 {
		return cfg, fmt.Errorf("LOG_KEEP must not be negative, got %d", cfg.Keep)
	}
	return cfg, nil
}
