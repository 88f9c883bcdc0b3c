// Package mcp exposes the blog and profile to AI agents as Model Context
// Protocol tools over stdio.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/folio-dev/folio/internal/chatbot"
	"github.com/folio-dev/folio/internal/content"
	"github.com/folio-dev/folio/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that answers questions about the site.
type Server struct {
	repo  *content.Repository
	store vectordb.VectorStore
	bot   *chatbot.Bot
	mcp   *server.MCPServer
}

// NewServer creates an MCP server over repo. store enables semantic
// search_posts and bot enables ask_about_me; either may be nil.
func NewServer(repo *content.Repository, store vectordb.VectorStore, bot *chatbot.Bot) *Server {
	s := &Server{
		repo:  repo,
		store: store,
		bot:   bot,
	}

	s.mcp = server.NewMCPServer(
		"folio",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

func (s *Server) registerTools() {
	s.mcp.AddTool(listPostsTool, s.handleListPosts)
	s.mcp.AddTool(getPostTool, s.handleGetPost)
	s.mcp.AddTool(searchPostsTool, s.handleSearchPosts)
	s.mcp.AddTool(listTagsTool, s.handleListTags)
	s.mcp.AddTool(askAboutMeTool, s.handleAskAboutMe)
}

// Serve starts the MCP server on stdio. Stdout carries protocol messages,
// so all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
