// Package mcp exposes the research library to agents over the Model Context
// Protocol on stdio.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/ziadkadry99/research-reader/internal/backend"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Library is the backend surface the tools read from. *backend.CategoryCache
// satisfies it.
type Library interface {
	Categories(ctx context.Context) ([]backend.Category, error)
	DocumentsByCategory(ctx context.Context, categoryID int) ([]backend.Document, error)
	Search(ctx context.Context, req backend.SearchRequest) ([]backend.Document, error)
	ArticleSummary(ctx context.Context, articleURL string) (*backend.ArticleSummary, error)
	AskArticle(ctx context.Context, req backend.ChatRequest) (string, error)
}

// Server wraps an MCP server that exposes the research library tools.
type Server struct {
	library     Library
	searchLimit int
	mcp         *server.MCPServer
}

// NewServer creates a new MCP server. searchLimit caps search_documents
// results when the caller gives no limit.
func NewServer(library Library, searchLimit int) *Server {
	if searchLimit <= 0 {
		searchLimit = 100
	}
	s := &Server{
		library:     library,
		searchLimit: searchLimit,
	}

	s.mcp = server.NewMCPServer(
		"reader",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listCategoriesTool, s.handleListCategories)
	s.mcp.AddTool(listDocumentsTool, s.handleListDocuments)
	s.mcp.AddTool(searchDocumentsTool, s.handleSearchDocuments)
	s.mcp.AddTool(getArticleSummaryTool, s.handleGetArticleSummary)
	s.mcp.AddTool(askArticleTool, s.handleAskArticle)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
