package main

import (
	"fmt"
	"time"

	"github.com/MKhiriev/world-server/internal/auth"
	"github.com/MKhiriev/world-server/internal/config"
	httphandler "github.com/MKhiriev/world-server/internal/handler/http"
	"github.com/MKhiriev/world-server/internal/logger"
	"github.com/MKhiriev/world-server/internal/server"
	"github.com/MKhiriev/world-server/internal/world"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

const adminTokenTTL = 24 * time.Hour

func main() {
	printBuildInfo()

	cfg, err := config.Get()
	log := logger.NewLogger("world-server", config.GetBootstrap().LogLevel)
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	log.Info().Object("config", cfg).Msg("received configs")

	if err = world.Prepare(cfg.World(), log); err != nil {
		log.Fatal().Err(err).Msg("error preparing world")
	}

	tokens, err := auth.NewTokens(cfg.Auth().JWTSecret(), adminTokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating token service")
	}

	handler := httphandler.NewHandler(cfg, tokens, log)

	srv, err := server.NewServer(handler.Init(), cfg.Server(), log)
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
