// Package commands implements the CLI subcommands.
package commands

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/HiddenStrawberry/anubis-discuss/internal/client"
	"github.com/HiddenStrawberry/anubis-discuss/internal/core/config"
)

type Flags struct {
	LogLevel   string
	LogFile    string
	ConfigPath string
	Server     string
	Token      string

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// Client is built in the Before hook from the resolved server and
	// credentials.
	Client *client.Client
}

// RequireClient returns the server client, or an error when no server is
// configured.
func (f *Flags) RequireClient() (*client.Client, error) {
	if f.Client == nil {
		return nil, fmt.Errorf("no server configured. Set server.base_url in the config or pass --server")
	}
	return f.Client, nil
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "anubis-discuss", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/anubis-discuss/anubis-discuss.log
// On Linux: $XDG_STATE_HOME/anubis-discuss/anubis-discuss.log
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "anubis-discuss", "anubis-discuss.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "anubis-discuss", "anubis-discuss.log")
	}

	return filepath.Join(home, ".local", "state", "anubis-discuss", "anubis-discuss.log")
}
