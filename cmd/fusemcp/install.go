package main

import (
	"fmt"
	"os"

	"github.com/fusemcp/fusemcp/internal/hostcfg"
	"github.com/spf13/cobra"
)

// installCmd registers this binary in the host AI client's MCP settings
// file so the client can launch it over the line protocol.
var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Register this server in the host client's MCP settings",
	Run: func(cmd *cobra.Command, args []string) {
		configPath, _ := cmd.Flags().GetString("config")
		if configPath == "" {
			var err error
			configPath, err = hostcfg.DefaultConfigPath()
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				os.Exit(1)
			}
		}

		binaryPath, err := os.Executable()
		if err != nil {
			fmt.Printf("Error resolving binary path: %v\n", err)
			os.Exit(1)
		}

		if err := hostcfg.Install(configPath, binaryPath); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Registered %q in %s\n", hostcfg.ServerName, configPath)
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
	installCmd.Flags().String("config", "", "Path to the client's MCP settings file (default: per-OS location)")
}
