package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// validateCmd checks the registry for catalog/template drift: descriptors
// that parse correctly but have no script template registered.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the registry and check for missing templates",
	Run: func(cmd *cobra.Command, args []string) {
		engine, err := newEngine(cmd)
		if err != nil {
			fmt.Printf("Registry invalid: %v\n", err)
			os.Exit(1)
		}

		missing := engine.CheckTemplates()
		if len(missing) > 0 {
			fmt.Printf("Registry loaded, but %d tool(s) have no script template:\n", len(missing))
			for _, name := range missing {
				fmt.Printf("  - %s\n", name)
			}
			os.Exit(1)
		}

		fmt.Printf("Registry valid: %d tools, all templates present\n", len(engine.Tools()))
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
