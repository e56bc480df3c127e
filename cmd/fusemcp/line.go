package main

import (
	"log"
	"os"

	"github.com/fusemcp/fusemcp/internal/logging"
	"github.com/fusemcp/fusemcp/pkg/adapters/lineproto"
	"github.com/spf13/cobra"
)

// lineCmd runs the JSON line protocol over stdin/stdout. This is the
// transport host clients launch the server with.
var lineCmd = &cobra.Command{
	Use:   "line",
	Short: "Run the JSON line protocol server on stdin/stdout",
	Long: `Reads one JSON request per line from stdin and writes one JSON response
per line to stdout. Methods: list_tools, call_tool, call_tools.
All logging goes to stderr.`,
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			log.Fatalf("Error initializing engine: %v", err)
		}

		level, _ := cmd.Flags().GetString("log-level")
		logger := logging.New(logging.ParseLevel(level))

		srv := lineproto.NewServer(engine, os.Stdin, os.Stdout, logger)
		if err := srv.Serve(); err != nil {
			logger.Error("line protocol server failed", "error", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(lineCmd)
}
