package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/madorn/bond-mcp-server/pkg/bond"
	"github.com/madorn/bond-mcp-server/pkg/config"
)

// Server exposes Bond Bridge device control as MCP tools. Every tool
// invocation acquires a fresh bridge client on entry and releases it
// on exit; nothing is shared across invocations but the configuration.
type Server struct {
	mcpServer *server.MCPServer
	cfg       *config.Config
	newClient bond.Factory
}

// NewServer creates an MCP server for the given configuration. A nil
// factory uses the configured bridge host; tests inject their own.
func NewServer(cfg *config.Config, factory bond.Factory) *Server {
	if factory == nil {
		factory = func() *bond.Client {
			return bond.NewClient(cfg.BondHost, cfg.BondToken, bond.Options{
				Timeout:    cfg.Timeout,
				MaxRetries: cfg.MaxRetries,
				RetryDelay: cfg.RetryDelay,
			})
		}
	}

	s := &Server{
		cfg:       cfg,
		newClient: factory,
	}

	s.mcpServer = server.NewMCPServer(
		cfg.ServerName,
		cfg.ServerVersion,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	s.registerTools()

	return s
}

// ServeStdio starts the MCP server using stdio transport.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
