package main

import (
	"database/sql"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	dreamlog "github.com/dreamlog-app/dreamlog/pkg"
	pkgdb "github.com/dreamlog-app/dreamlog/pkg/db"
	"github.com/dreamlog-app/dreamlog/pkg/utils"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:     "dreamlog",
	Short:   "A local-first dream journal backend.",
	Long:    ``,
	Version: fmt.Sprintf("v%s", dreamlog.Version),
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var completionShells = []string{"bash", "zsh", "fish", "powershell"}

var completionCmd = &cobra.Command{
	Use:   fmt.Sprintf("completion %s", strings.Join(completionShells, "|")),
	Short: "Generate shell completion scripts",
	Long: `Generate shell completion scripts for dreamlog.

The command prints a completion script to stdout. You can source it in your shell
or install it to the appropriate location for your shell to enable completions permanently.

Examples:

  Bash (current shell):
    $ source <(dreamlog completion bash)

  Zsh:
    $ dreamlog completion zsh > "${fpath[1]}/_dreamlog"

  Fish:
    $ dreamlog completion fish | source`,
	DisableFlagsInUseLine: true,
	ValidArgs:             completionShells,
	Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(cmd.OutOrStdout())
		case "zsh":
			return rootCmd.GenZshCompletion(cmd.OutOrStdout())
		case "fish":
			return rootCmd.GenFishCompletion(cmd.OutOrStdout(), true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported shell: %s", args[0])
		}
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of dreamlog",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(dreamlog.Version)
	},
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the dreamlog database",
	Long:  `Provides commands for managing the dreamlog SQLite database.`,
}

var dbInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the dreamlog database and its schema",
	Long: `Opens the SQLite database at the resolved path (--db or the platform default),
creates the dreams table if missing, and seeds example records into an empty store.
Safe to run against an already-initialized database.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		walEnabled, _ := cmd.Flags().GetBool("wal")
		syncMode, _ := cmd.Flags().GetString("sync")
		noSeed, _ := cmd.Flags().GetBool("no-seed")

		conn, resolvedPath, err := openStore(walEnabled, syncMode, !noSeed)
		if err != nil {
			return err
		}
		defer conn.Close()

		fmt.Printf("Database ready at %s\n", resolvedPath)
		return nil
	},
}

// openStore resolves the database path, opens the pool, and bootstraps the
// schema (plus seed data when seed is true).
func openStore(walEnabled bool, syncMode string, seed bool) (*sql.DB, string, error) {
	resolvedPath, err := utils.ResolveAndEnsureDBPath(dbPath)
	if err != nil {
		return nil, "", err
	}

	conn, err := pkgdb.OpenDBConnection(resolvedPath, walEnabled, syncMode)
	if err != nil {
		return nil, "", err
	}

	if err := pkgdb.EnsureSchema(conn); err != nil {
		conn.Close()
		return nil, "", err
	}

	if seed {
		if err := seedStore(conn); err != nil {
			conn.Close()
			return nil, "", err
		}
	}

	return conn, resolvedPath, nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to the SQLite database file (default: platform app-data directory)")

	dbInitCmd.Flags().Bool("wal", true, "Enable WAL journal mode")
	dbInitCmd.Flags().String("sync", "FULL", "Synchronous pragma (OFF, NORMAL, FULL, EXTRA)")
	dbInitCmd.Flags().Bool("no-seed", false, "Skip seeding example dreams into an empty store")
	dbCmd.AddCommand(dbInitCmd)

	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(deleteCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
