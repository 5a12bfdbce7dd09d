// obzr-mcp bridges the Obzr backend to MCP hosts over stdio.
package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/Pawank06/obzr-go/client"
	"github.com/Pawank06/obzr-go/internal/config"
	"github.com/Pawank06/obzr-go/internal/requestcache"
	"github.com/Pawank06/obzr-go/internal/tokenstore"
	"github.com/Pawank06/obzr-go/mcp/handlers"
)

const serverVersion = "0.1.0"

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) {
	if err := handler.RegisterTools(s); err != nil {
		log.Fatal().Err(err).Msgf("Failed to register %s tools", name)
	}
}

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("config load failed")
	}
	cfg.Init()

	store, err := tokenstore.NewFileStore(cfg.TokenPath)
	if err != nil {
		log.Fatal().Err(err).Str("token_path", cfg.TokenPath).Msg("open credential store failed")
	}

	cacheCfg, err := requestcache.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("cache config load failed")
	}

	log.Info().Str("service_url", cfg.ServiceURL).Msg("creating client")
	c := client.New(cfg.ServiceURL,
		client.WithTokenStore(store),
		client.WithRequestCache(requestcache.NewFromConfig(cacheCfg)),
	)
	defer func() { _ = c.Close() }()

	s := server.NewMCPServer(
		"obzr-mcp-server",
		serverVersion,
		server.WithToolCapabilities(true),
	)

	registerHandler(s, handlers.NewSessionHandler(c), "session")
	registerHandler(s, handlers.NewChatHandler(c), "chat")
	registerHandler(s, handlers.NewMemoryHandler(c), "memory")

	log.Info().Msg("Starting Obzr MCP server (stdio transport)")
	if err := server.ServeStdio(s); err != nil {
		log.Error().Err(err).Msg("Stdio server error")
		os.Exit(1)
	}
}
