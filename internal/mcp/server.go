package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/biobuilder/internal/controller"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes document QA and extraction as
// agent tools.
type Server struct {
	backend controller.Backend
	mcp     *server.MCPServer
}

// NewServer creates a new MCP server backed by the given API client.
func NewServer(backend controller.Backend) *Server {
	s := &Server{backend: backend}

	s.mcp = server.NewMCPServer(
		"biobuilder",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(askDocumentsTool, s.handleAskDocuments)
	s.mcp.AddTool(extractEntitiesTool, s.handleExtractEntities)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
