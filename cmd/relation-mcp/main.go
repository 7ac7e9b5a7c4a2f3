package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/relationtools/relation-mcp/internal/common"
	"github.com/relationtools/relation-mcp/internal/config"
	"github.com/relationtools/relation-mcp/internal/relation"
	"github.com/relationtools/relation-mcp/internal/tools"
)

const serverVersion = "0.2.0"

func main() {
	httpMode := flag.Bool("http", false, "Serve MCP over streamable HTTP instead of stdio")
	configFile := flag.String("config", "relation-mcp.toml", "Path to config file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := common.NewLoggerFromConfig(cfg.Logging)

	client := relation.New(cfg.BaseURL(), cfg.Relation.Token, cfg.Relation.GetTimeout(), logger)

	mcpServer := server.NewMCPServer(
		cfg.Server.Name,
		serverVersion,
		server.WithToolCapabilities(true),
	)

	count, err := tools.Register(mcpServer, client, logger)
	if err != nil {
		logger.Error().Str("error", err.Error()).Msg("invalid tool catalog")
		os.Exit(1)
	}

	logger.Info().
		Int("tools", count).
		Str("subdomain", cfg.Relation.Subdomain).
		Msg("relation-mcp initialized")

	if !*httpMode {
		// Stdio transport — reads stdin, writes stdout
		if err := server.ServeStdio(mcpServer); err != nil {
			fmt.Fprintf(os.Stderr, "stdio server error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	httpServer := server.NewStreamableHTTPServer(mcpServer,
		server.WithStateLess(true),
	)

	logger.Info().Str("port", cfg.Server.Port).Msg("starting MCP streamable HTTP")

	if err := httpServer.Start(":" + cfg.Server.Port); err != nil {
		fmt.Fprintf(os.Stderr, "http server error: %v\n", err)
		os.Exit(1)
	}
}
