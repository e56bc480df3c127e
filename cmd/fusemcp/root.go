package main

import (
	"fmt"
	"os"

	"github.com/fusemcp/fusemcp"
	"github.com/fusemcp/fusemcp/internal/logging"
	"github.com/fusemcp/fusemcp/pkg/catalog"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fusemcp",
	Short: "fusemcp generates Fusion 360 scripts from declarative tool calls",
	Long: `fusemcp is a script generation server for Fusion 360. It validates tool
calls against a declarative registry, expands script templates and serves
the result over HTTP, a JSON line protocol, or MCP.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("registry", "", "Path to a tool registry file (default: embedded registry)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}

// loadCatalog builds the catalog from --registry, or the embedded default
// when the flag is unset.
func loadCatalog(cmd *cobra.Command) (*catalog.Catalog, error) {
	path, _ := cmd.Flags().GetString("registry")
	if path == "" {
		return catalog.Default()
	}
	return catalog.Load(path)
}

// newEngine initializes the generation engine for a command. A catalog
// load failure is fatal to the command: the server must never start with a
// partial catalog.
func newEngine(cmd *cobra.Command) (*fusemcp.Engine, error) {
	c, err := loadCatalog(cmd)
	if err != nil {
		return nil, err
	}
	level, _ := cmd.Flags().GetString("log-level")
	return fusemcp.New(
		fusemcp.WithCatalog(c),
		fusemcp.WithLogger(logging.New(logging.ParseLevel(level))),
	)
}
