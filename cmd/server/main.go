package main

import (
	"context"
	"fmt"

	"github.com/collectify/collectify/internal/config"
	handler "github.com/collectify/collectify/internal/handler/http"
	"github.com/collectify/collectify/internal/logger"
	"github.com/collectify/collectify/internal/server"
	"github.com/collectify/collectify/internal/service"
	"github.com/collectify/collectify/internal/store"
	"github.com/collectify/collectify/migrations"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	cfg, err := config.GetStructuredConfig()
	if err != nil {
		logger.NewLogger("collectify").Fatal().Err(err).Msg("error getting configs")
	}

	log := logger.NewLogger(cfg.App.LogRole)
	log.Debug().Any("config", cfg).Msg("received configs")

	ctx := context.Background()

	db, err := store.NewConnect(ctx, cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err := migrations.Migrate(db.DB, db.Driver); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	st := store.NewStore(db, log)
	defer func() {
		if err := st.Close(); err != nil {
			log.Error().Err(err).Msg("error closing store")
		}
	}()

	services := service.NewServices(st, log)
	handlers := handler.NewHandler(services, log)

	srv, err := server.NewServer(handlers.Init(), cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}

	if buildDate == "" {
		buildDate = "N/A"
	}

	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
