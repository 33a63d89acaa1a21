package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/madorn/bond-mcp-server/pkg/config"
	bondmcp "github.com/madorn/bond-mcp-server/pkg/mcp"
)

func main() {
	// Logging must go to stderr — stdout is the MCP transport
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}
	zerolog.SetGlobalLevel(cfg.ZerologLevel())

	log.Info().
		Str("version", cfg.ServerVersion).
		Str("bridge", cfg.BondHost).
		Msg("Starting Bond MCP server on stdio")

	server := bondmcp.NewServer(cfg, nil)

	if err := server.ServeStdio(); err != nil {
		log.Fatal().Err(err).Msg("MCP server failed")
	}
}
