// Package hostcfg edits the host AI client's MCP settings file to register
// this server, so the client launches it over the line protocol.
package hostcfg

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ServerName is the key the server entry is registered under.
const ServerName = "fusion360"

// ServerEntry is one server record inside the client's mcpServers map.
type ServerEntry struct {
	Command     string            `json:"command"`
	Args        []string          `json:"args"`
	Env         map[string]string `json:"env"`
	Disabled    bool              `json:"disabled"`
	AutoApprove []string          `json:"autoApprove"`
}

// DefaultConfigPath returns the per-OS default location of the client's
// MCP settings file.
func DefaultConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(home, "AppData", "Roaming", "Code", "User", "globalStorage",
			"saoudrizwan.claude-dev", "settings", "cline_mcp_settings.json"), nil
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", "Claude",
			"claude_desktop_config.json"), nil
	default:
		return filepath.Join(home, ".config", "Claude", "claude_desktop_config.json"), nil
	}
}

// Install inserts or updates the server entry in the settings file at
// configPath. The file must already exist: a missing file means the client
// has never run, and guessing its location risks writing config the client
// will never read.
func Install(configPath, binaryPath string) error {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("read config %s: %w", configPath, err)
	}

	var config map[string]any
	if err := json.Unmarshal(data, &config); err != nil {
		return fmt.Errorf("parse config %s: %w", configPath, err)
	}

	servers, ok := config["mcpServers"].(map[string]any)
	if !ok {
		servers = make(map[string]any)
		config["mcpServers"] = servers
	}

	servers[ServerName] = ServerEntry{
		Command:     binaryPath,
		Args:        []string{"line"},
		Env:         map[string]string{},
		Disabled:    false,
		AutoApprove: []string{},
	}

	out, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	out = append(out, '\n')

	if err := os.WriteFile(configPath, out, 0o644); err != nil {
		return fmt.Errorf("write config %s: %w", configPath, err)
	}
	return nil
}
