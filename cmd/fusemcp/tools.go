package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/fusemcp/fusemcp/pkg/catalog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "Inspect and manage the tool registry",
}

var toolsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all tools in the registry",
	Run: func(cmd *cobra.Command, args []string) {
		c, err := loadCatalog(cmd)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}

		tools := c.All()
		fmt.Printf("Tools in registry (%d):\n", len(tools))
		for _, t := range tools {
			fmt.Printf("  - %s: %s\n", t.Name, t.Description)
			fmt.Println("    Parameters:")

			names := make([]string, 0, len(t.Parameters))
			for name := range t.Parameters {
				names = append(names, name)
			}
			sort.Strings(names)

			for _, name := range names {
				spec := t.Parameters[name]
				requirement := "required"
				if spec.HasDefault {
					requirement = fmt.Sprintf("optional, default: %v", spec.Default)
				}
				fmt.Printf("      - %s (%s, %s): %s\n", name, spec.Type, requirement, spec.Description)
			}
			fmt.Printf("    Documentation: %s\n\n", t.Docs)
		}
	},
}

var toolsAddCmd = &cobra.Command{
	Use:   "add <descriptor-file>",
	Short: "Add a tool descriptor to a registry file",
	Long: `Appends the tool descriptor in the given YAML or JSON file to the
registry named by --registry. The descriptor is validated and duplicate
names are rejected. Adding a tool also requires registering a script
template for it before the engine can serve it.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		registryPath, _ := cmd.Flags().GetString("registry")
		if registryPath == "" {
			fmt.Println("--registry is required: the embedded registry cannot be modified")
			os.Exit(1)
		}
		if err := addTool(registryPath, args[0]); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

// addTool appends one descriptor to the registry file, re-validating the
// whole registry before writing anything back.
func addTool(registryPath, descriptorPath string) error {
	registryData, err := os.ReadFile(registryPath)
	if err != nil {
		return fmt.Errorf("read registry: %w", err)
	}
	var entries []map[string]any
	if err := yaml.Unmarshal(registryData, &entries); err != nil {
		return fmt.Errorf("parse registry: %w", err)
	}

	descriptorData, err := os.ReadFile(descriptorPath)
	if err != nil {
		return fmt.Errorf("read descriptor: %w", err)
	}
	var entry map[string]any
	if err := yaml.Unmarshal(descriptorData, &entry); err != nil {
		return fmt.Errorf("parse descriptor: %w", err)
	}

	entries = append(entries, entry)

	merged, err := yaml.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encode registry: %w", err)
	}
	// Catches malformed descriptors and duplicate names in one pass.
	if _, err := catalog.Parse(merged); err != nil {
		return err
	}

	if err := os.WriteFile(registryPath, merged, 0o644); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}

	fmt.Printf("Tool added: %v\n", entry["name"])
	return nil
}

func init() {
	rootCmd.AddCommand(toolsCmd)
	toolsCmd.AddCommand(toolsListCmd)
	toolsCmd.AddCommand(toolsAddCmd)
}
