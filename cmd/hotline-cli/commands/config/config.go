// Package config implements configuration management subcommands.
package config

import (
	"github.com/spf13/cobra"
)

// Cmd is the config subcommand.
var Cmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long: `Manage hotline-cli configuration.

Subcommands:
  show  Display current configuration
  init  Write a default configuration file`,
}

func init() {
	Cmd.AddCommand(showCmd)
	Cmd.AddCommand(initCmd)
}
