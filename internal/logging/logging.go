package logging

import (
	"io"
	"os"
	"strings"
	"sync"

	"banking-backoffice/internal/config"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

var (
	mu     sync.RWMutex
	output io.Writer = os.Stdout
	file   *rollingFile
)

// Init configures the global zerolog logger. When cfg.File is set, records go to
// stdout and to a file that rolls over at cfg.MaxBytes().
func Init(cfg config.LogConfig) error {
	level := zerolog.InfoLevel
	if v := strings.TrimSpace(cfg.Level); v != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(v)); err == nil {
			level = parsed
		}
	}

	var raw io.Writer = os.Stdout
	var fw *rollingFile
	if path := strings.TrimSpace(cfg.File); path != "" {
		w, err := openRollingFile(path, cfg.MaxBytes(), cfg.Keep)
		if err != nil {
			return err
		}
		fw = w
		raw = io.MultiWriter(os.Stdout, w)
	}

	var out io.Writer = raw
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{Out: raw}
	}

	zerolog.SetGlobalLevel(level)
	logger := zerolog.New(out).With().Timestamp().Logger()
	if cfg.SampleEvery > 1 {
		logger = logger.Sample(&zerolog.BasicSampler{N: uint32(cfg.SampleEvery)})
	}
	log.Logger = logger

	mu.Lock()
	prev := file
	output = raw
	file = fw
	mu.Unlock()
	if prev != nil {
		_ = prev.Close()
	}
	return nil
}

// Writer returns the sink used by the global logger, for handlers that format
// their own records.
func Writer() io.Writer {
	mu.RLock()
	defer mu.RUnlock()
	return output
}

func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	output = os.Stdout
	return err
}
