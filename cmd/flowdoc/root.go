package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/TM9657/flowdoc/config"
	"github.com/TM9657/flowdoc/utils"
)

var (
	exit       = os.Exit
	configPath string
	debug      bool
)

// NewRootCmd creates the root 'flowdoc' command with persistent flags and subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "flowdoc",
		Short: "Structured document tooling for flows",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigFile, "Path to flowdoc config JSON")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logs")
	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		// Load environment variables from .env file, if present
		_ = godotenv.Load()
		if debug {
			utils.SetMode("debug")
		}
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newRenderCmd(),
		newTextCmd(),
		newValidateCmd(),
		newLintCmd(),
		newConvertCmd(),
		newGraphCmd(),
		newExportCmd(),
		newSpecCmd(),
	)

	return rootCmd
}

// loadCfg loads the config file named by --config, falling back to defaults.
func loadCfg() *config.Config {
	cfg, err := config.LoadConfigOrDefault(configPath)
	if err != nil {
		utils.Error("Failed to load config: %v", err)
		exit(1)
	}
	return cfg
}
