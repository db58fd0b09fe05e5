package mcpserver

import (
	"context"
	"errors"

	"bookrag/internal/rag"
	"bookrag/pkg/logger_i"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const version = "1.0.0"

// Server exposes the query engine over the Model Context Protocol so agent
// clients can ask questions about indexed books without going through HTTP.
type Server struct {
	ragService rag.Service
	server     *mcp.Server
	logger     *logger_i.Logger
}

func NewServer(ragService rag.Service) (*Server, error) {
	if ragService == nil {
		return nil, errors.New("rag service is required")
	}

	s := &Server{
		ragService: ragService,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    "bookrag",
			Version: version,
		}, nil),
		logger: logger_i.NewLogger("MCP"),
	}
	s.registerTools()
	return s, nil
}

// Run serves over stdio and blocks until the context is cancelled.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server listening on stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
