package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	server "residency_hub/internal/adapters/http_server"
	"residency_hub/internal/adapters/observability"
	"residency_hub/internal/app"
	"residency_hub/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()

	// set global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	reg := observability.InitRegistry()
	observability.Serve(cfg.MetricsAddr, reg)

	db, repo, err := shared.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer db.Close()

	cache, err := shared.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache init failed")
	}

	// deps
	q := app.NewQueryService(repo, cache, cfg.StoreTimeout)
	c := app.NewCommandService(repo, cache)
	u := app.NewUserService(repo, repo)

	var writeLimit *rate.Limiter
	if cfg.WriteRPS > 0 {
		writeLimit = rate.NewLimiter(rate.Limit(cfg.WriteRPS), cfg.WriteRPS)
	}

	// http
	srv := server.New(0)
	srv.Mount("/metrics", observability.MetricsHandler(reg))
	srv.MountHandlers(&server.Handlers{
		Q:          q,
		C:          c,
		U:          u,
		Dev:        observability.IsDev(cfg.AppEnv),
		WriteLimit: writeLimit,
	})

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: srv.Mux(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown failed")
		}
	}()

	log.Info().Str("addr", cfg.HTTPAddr).Str("cache", cfg.CacheDriver).Msg("API listening")
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server failed")
	}
	log.Info().Msg("API stopped")
}
