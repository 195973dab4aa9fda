package mcp

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"sync"

	"github.com/mark3labs/mcp-go/server"

	dreamlogpkg "github.com/dreamlog-app/dreamlog/pkg"
	pkgdb "github.com/dreamlog-app/dreamlog/pkg/db"
	"github.com/dreamlog-app/dreamlog/pkg/dreams"
	"github.com/dreamlog-app/dreamlog/pkg/utils"
)

// DreamlogMCPServer exposes the dream store to the UI process as a set of
// named tools over stdio. All store access funnels through mu, so at most
// one store operation runs at a time no matter how many calls arrive.
type DreamlogMCPServer struct {
	mcpServer *server.MCPServer
	db        *sql.DB
	mu        sync.Mutex
	DBPath    string
}

// NewDreamlogMCPServer opens (or creates) the SQLite database at dbPath,
// ensures the schema and seed data, and wraps it in an MCP server. Tools
// become reachable only after this bootstrap has fully succeeded.
func NewDreamlogMCPServer(dbPath string) (*DreamlogMCPServer, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, err
	}

	s := server.NewMCPServer(
		"Dreamlog MCP Server",
		dreamlogpkg.Version,
		server.WithResourceCapabilities(true, true),
		server.WithLogging(),
		server.WithRecovery(),
	)

	// Open database (WAL + FULL).
	dbConn, err := pkgdb.OpenDBConnection(resolvedPath, true, "FULL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := pkgdb.EnsureSchema(dbConn); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to initialize schema for '%s': %w", resolvedPath, err)
	}

	if err := dreams.SeedInitialData(context.Background(), dbConn); err != nil {
		dbConn.Close()
		return nil, fmt.Errorf("failed to seed initial data for '%s': %w", resolvedPath, err)
	}

	return &DreamlogMCPServer{
		mcpServer: s,
		db:        dbConn,
		DBPath:    resolvedPath,
	}, nil
}

// Start runs the stdio event loop. Make sure to register tools beforehand.
func (s *DreamlogMCPServer) Start() error {
	return server.ServeStdio(s.mcpServer)
}

// DB returns the underlying *sql.DB.
func (s *DreamlogMCPServer) DB() *sql.DB {
	return s.db
}

// MCPRawServer exposes the raw mcp-go server (useful for additional configuration).
func (s *DreamlogMCPServer) MCPRawServer() *server.MCPServer {
	return s.mcpServer
}

// Close cleans up allocated resources.
func (s *DreamlogMCPServer) Close() error {
	if s.db != nil {
		// TRUNCATE mode waits for transactions and writes the WAL back to the main DB.
		_, err := s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE);")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: WAL checkpoint failed during close: %v\n", err)
		}
		return s.db.Close()
	}
	return nil
}
