package main

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mjcet-acm/site-backend/config"
	"github.com/mjcet-acm/site-backend/storage"
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()

	if err := storage.RunBackup(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("backup failed")
	}

	log.Info().Msg("backup completed")
}
