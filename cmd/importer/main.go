package main

import (
	"context"
	"flag"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"residency_hub/internal/adapters/feed"
	"residency_hub/internal/adapters/observability"
	"residency_hub/internal/app"
	"residency_hub/internal/shared"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := shared.Load()
	src := flag.String("source", cfg.ImportSource, "feed to import: file path, http(s) URL or s3://bucket/key")
	workers := flag.Int("workers", cfg.ImportWorkers, "concurrent inserts")
	flag.Parse()

	// 1) initialize global logger (console in dev, JSON otherwise)
	log.Logger = observability.NewLogger(cfg.AppEnv)

	log.Info().
		Str("source", *src).
		Int("workers", *workers).
		Msg("importer starting")

	db, repo, err := shared.OpenStore(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("store init failed")
	}
	defer db.Close()

	// writes must reach whichever cache the API reads from
	for _, w := range cfg.ImportWarnings() {
		log.Warn().Str("cache_driver", cfg.CacheDriver).Msg(w)
	}
	cache, err := shared.OpenCache(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("cache init failed")
	}

	loader := &feed.Loader{
		HTTP: feed.NewClient(cfg.FeedKey, cfg.FeedRPS),
		S3:   feed.S3Config{Region: cfg.S3Region, Endpoint: cfg.S3Endpoint, PathStyle: cfg.S3PathStyle},
	}
	var inputs []app.ResidencyInput
	if err := loader.Load(ctx, *src, &inputs); err != nil {
		log.Fatal().Err(err).Msg("feed load failed")
	}
	log.Info().Int("rows", len(inputs)).Msg("feed loaded")

	rep, err := app.NewImporter(app.NewCommandService(repo, cache), *workers).Run(ctx, inputs)
	if err != nil {
		log.Error().Err(err).Msg("import interrupted")
	}
	log.Info().
		Int("created", rep.Created).
		Int("duplicates", rep.Duplicates).
		Int("invalid", rep.Invalid).
		Int("failed", rep.Failed).
		Msg("import completed")
}
