package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/onlinedenker/denker/internal/catalog"
	"github.com/onlinedenker/denker/internal/config"
	"github.com/onlinedenker/denker/internal/database"
	"github.com/onlinedenker/denker/internal/httpserver"
	"github.com/onlinedenker/denker/internal/store"
)

const sweepEvery = time.Hour

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if !cfg.Production() {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	cat, err := catalog.Load(cfg.PuzzleFile)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.PuzzleFile).Msg("failed to load puzzles")
	}

	db, err := database.Open(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to open database")
	}
	defer db.Close()
	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("failed to migrate database")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := httpserver.New(cfg, store.NewMemoryStore(), cat, db)
	log.Info().Str("port", cfg.Port).Int("puzzles", cat.Len()).Msg("starting denker")
	if err := srv.Run(ctx, ":"+cfg.Port, sweepEvery); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
	log.Info().Msg("shut down")
}
