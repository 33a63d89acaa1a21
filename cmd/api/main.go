package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/madorn/bond-mcp-server/pkg/api"
	"github.com/madorn/bond-mcp-server/pkg/bond/schema"
	"github.com/madorn/bond-mcp-server/pkg/config"

	_ "github.com/madorn/bond-mcp-server/docs"
)

// @title           Bond MCP Server API
// @version         0.1.0
// @description     REST facade over the Bond Bridge Local API

// @host      localhost:8080
// @BasePath  /api/v1
// @schemes   http

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	validator := schema.NewValidator()
	router := api.NewRouter(cfg, nil, validator)

	log.Info().
		Str("addr", cfg.APIAddr).
		Str("bridge", cfg.BondHost).
		Msg("Starting REST API")

	if err := router.Run(cfg.APIAddr); err != nil {
		log.Fatal().Err(err).Msg("API server failed")
	}
}
