package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	pkgmcp "github.com/dreamlog-app/dreamlog/pkg/mcp"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the Dreamlog MCP server (stdio)",
	Long: `Start a Model Context Protocol (MCP) server that exposes every dreamlog
operation as an MCP tool via STDIO. This is the surface the UI process talks to.

The --db flag is optional. If not provided, a system-specific default location is used:
- Windows: %USERPROFILE%\AppData\Roaming\dreamlog\dreamlog.db
- macOS: ~/Library/Application Support/dreamlog/dreamlog.db
- Linux: ~/.local/share/dreamlog/dreamlog.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv, err := pkgmcp.NewDreamlogMCPServer(dbPath)
		if err != nil {
			return err
		}
		defer srv.Close()

		srv.RegisterAllTools()

		// Log to stderr so we don't contaminate the JSON-RPC stream on stdout.
		fmt.Fprintf(os.Stderr, "Dreamlog MCP server started. DB: %s\n", srv.DBPath)
		fmt.Fprintln(os.Stderr, "Available tools: ping, list_dreams, get_dream, upsert_dream, delete_dream, export_dreams, import_dreams, get_app_paths, hash_pin, verify_pin")
		fmt.Fprintln(os.Stderr, "Listening for MCP JSON-RPC on STDIN/STDOUT ... (Ctrl+C to quit)")

		// Run the server (blocks until stdio closes).
		return srv.Start()
	},
}
