// Package mcp exposes document search and question answering as MCP tools
// over stdio, so coding agents can query the ingested corpus directly.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/ragdoc/ragdoc/internal/retrieval"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes document retrieval tools.
type Server struct {
	pipeline *retrieval.Pipeline
	mcp      *server.MCPServer
}

// NewServer creates an MCP server backed by the retrieval pipeline.
func NewServer(pipeline *retrieval.Pipeline) *Server {
	s := &Server{pipeline: pipeline}

	s.mcp = server.NewMCPServer(
		"ragdoc",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(askQuestionTool, s.handleAskQuestion)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
