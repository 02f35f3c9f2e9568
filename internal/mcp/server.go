// Package mcp exposes the badge pipeline as Model Context Protocol tools
// over stdio, so agents can query repository statistics directly.
package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/locbadge/locbadge/internal/server"
)

// serverName identifies this MCP server implementation.
const serverName = "locbadge"

// ServerDeps holds the dependencies for the MCP server.
type ServerDeps struct {
	// Provider computes repository statistics. Required.
	Provider server.StatsProvider

	// Version is the binary version reported to clients.
	Version string
}

// Server wraps the MCP SDK server with locbadge tools registered.
type Server struct {
	impl *mcpsdk.Server
}

// NewServer creates an MCP server with all tools registered.
func NewServer(deps ServerDeps) *Server {
	impl := mcpsdk.NewServer(&mcpsdk.Implementation{
		Name:    serverName,
		Version: deps.Version,
	}, nil)

	registerStatsTool(impl, deps.Provider)

	return &Server{impl: impl}
}

// Run serves MCP over stdio until ctx is canceled or the client
// disconnects.
func (s *Server) Run(ctx context.Context) error {
	if err := s.impl.Run(ctx, &mcpsdk.StdioTransport{}); err != nil {
		return fmt.Errorf("run mcp server: %w", err)
	}

	return nil
}
