package main

import (
	"careops/config"
	"careops/di"
	"careops/helper"
	"careops/shared/logger"

	"github.com/rs/zerolog/log"
)

func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	if cfg.DB.Postgres.AutoMigrate {
		if err := helper.Up(cfg); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply migrations on boot")
		}
	}

	http := di.InitializeService()
	http.Serve()
}
