package main

import (
	"fmt"
	"strings"

	"github.com/fusemcp/fusemcp"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the fusemcp version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("fusemcp %s\n", strings.TrimSpace(fusemcp.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
