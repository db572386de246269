package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/rndocs/pkg/catalog"
	"github.com/gnana997/rndocs/pkg/mcplog"
	"github.com/gnana997/rndocs/pkg/propfilter"
	"github.com/gnana997/rndocs/pkg/service"
	"github.com/gnana997/rndocs/pkg/util"
)

// ServerName is reported to MCP clients during initialization.
const ServerName = "rndocs"

var serverVersion = "0.1.0-dev"

// SetVersion overrides the version reported to clients.
func SetVersion(v string) {
	if v != "" {
		serverVersion = v
	}
}

// Server exposes the catalog's navigation, lookup and prop filter as MCP
// tools.
type Server struct {
	mcpServer *server.MCPServer
	query     *catalog.QueryService
	service   *service.Service
	callLog   *mcplog.Logger // may be nil
	logger    *slog.Logger
}

// NewServer creates an MCP server over qs. cache and callLog are optional.
func NewServer(qs *catalog.QueryService, cache *propfilter.Cache, callLog *mcplog.Logger) *Server {
	s := &Server{
		query:   qs,
		service: service.New(qs, cache),
		callLog: callLog,
		logger:  util.DiscardLogger(),
	}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if callLog != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}

	s.mcpServer = server.NewMCPServer(ServerName, serverVersion, opts...)
	s.mcpServer.AddTools(
		server.ServerTool{Tool: listCategoriesTool(), Handler: s.handleListCategories},
		server.ServerTool{Tool: listDocumentsTool(), Handler: s.handleListDocuments},
		server.ServerTool{Tool: getDocumentTool(), Handler: s.handleGetDocument},
		server.ServerTool{Tool: filterPropsTool(), Handler: s.handleFilterProps},
		server.ServerTool{Tool: searchDocumentsTool(), Handler: s.handleSearchDocuments},
	)

	return s
}

// WithLogger sets the diagnostic logger and returns s.
func (s *Server) WithLogger(logger *slog.Logger) *Server {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// MCPServer returns the underlying server, for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves MCP on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	s.logger.Info("serving MCP on stdio", "documents", len(s.query.Documents()))
	return server.ServeStdio(s.mcpServer)
}
