// Package server exposes the synthesis service as MCP tools over stdio.
package server

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/dgnsrekt/edge-tts-mcp/internal/tts"
)

// Server bundles the MCP server, the synthesis service, and the detached-job
// registry.
type Server struct {
	mcp      *mcp.Server
	svc      *tts.Service
	registry *Registry
	logger   *log.Logger
}

// New builds a Server with all tools registered. Version ends up in the MCP
// handshake.
func New(svc *tts.Service, cfg tts.Config, version string, logger *log.Logger) *Server {
	impl := &mcp.Implementation{
		Name:    "edge-tts-mcp",
		Title:   "Edge Text-to-Speech",
		Version: version,
	}

	s := &Server{
		mcp:      mcp.NewServer(impl, nil),
		svc:      svc,
		registry: NewRegistry(cfg.JobTTL, cfg.CleanupInterval),
		logger:   logger,
	}
	s.registerTools()
	return s
}

// Run serves MCP over stdin/stdout until the context is cancelled or the
// client disconnects.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("starting MCP server", "name", "edge-tts-mcp")
	defer s.registry.Close()
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}
