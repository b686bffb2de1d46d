package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"banking-backoffice/internal/config"
	"banking-backoffice/internal/keylock"
	"banking-backoffice/internal/ledger"
	"banking-backoffice/internal/logging"
	"banking-backoffice/internal/randomorg"
	"banking-backoffice/internal/store"
	httptransport "banking-backoffice/internal/transport/http"
	"banking-backoffice/internal/wager"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// backend is what every service needs from storage. Both the Postgres store and
// the in-memory store satisfy it.
type backend interface {
	ledger.Store
	wager.Journal
	httptransport.Backend
}

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Debug().Err(err).Msg("no .env loaded")
	}
	cfg, err := config.LoadApp()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}
	if err := logging.Init(cfg.Log); err != nil {
		log.Fatal().Err(err).Msg("logging init failed")
	}
	defer logging.Close()

	st, closeStore, err := openBackend(cfg.Server)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer closeStore()

	src, err := newSource(cfg.Random)
	if err != nil {
		log.Fatal().Err(err).Msg("random source init failed")
	}

	r := newRouter(st, src, cfg.Server)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.Server.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Random.Timeout*2 + 10*time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.Server.HTTPAddr).Str("random_source", cfg.Random.Source).Msg("http listening")
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server stopped")
		return
	}
	log.Info().Msg("server stopped")
}

func openBackend(cfg config.ServerConfig) (backend, func(), error) {
	if cfg.PostgresDSN == "" {
		log.Warn().Msg("POSTGRES_DSN not set; accounts are kept in memory")
		return store.NewMemory(), func() {}, nil
	}
	st, err := store.New(cfg.PostgresDSN)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Ping(context.Background()); err != nil {
		st.Close()
		return nil, nil, err
	}
	return st, st.Close, nil
}

func newSource(cfg config.RandomConfig) (wager.Source, error) {
	if cfg.Source == config.RandomSourceLocal {
		log.Warn().Msg("using local pseudo-random draws; not for production")
		return randomorg.Local{}, nil
	}
	return randomorg.New(cfg.URL, cfg.APIKey, cfg.Timeout)
}

func newRouter(st backend, src wager.Source, cfg config.ServerConfig) *chi.Mux {
	locks := keylock.New()
	return httptransport.NewRouter(httptransport.Services{
		Ledger:  ledger.New(st, locks),
		Engine:  wager.NewEngine(st, src, locks, st),
		Backend: st,
	}, cfg)
}
