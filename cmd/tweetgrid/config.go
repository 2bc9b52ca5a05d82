package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tweetgrid/pkg/config"
	"tweetgrid/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage tweetgrid configuration files.

Configuration can be loaded from:
  - Command line flags (highest priority)
  - Environment variables
  - Configuration file
  - Default values (lowest priority)`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create an example configuration file",
	Long: `Create a configuration file populated with the default values.

The file is created in the current directory as 'tweetgrid.yaml' unless a
different path is given with the --config flag.`,
	Run: runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long: `Show the effective configuration after merging all sources.

The API token is masked.`,
	Run: runConfigShow,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration file",
	Long:  `Validate a configuration file for syntax errors and invalid values.`,
	Run:   runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "tweetgrid.yaml"
	}

	if _, err := os.Stat(configPath); err == nil {
		ui.PrintError("Configuration file already exists", configPath)
		fmt.Println("\nTo overwrite, first remove the existing file:")
		fmt.Printf("  rm %s\n", configPath)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(configPath); err != nil {
		ui.PrintError("Failed to write configuration file", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration file created: " + configPath)
	fmt.Println("\nSet the API token via 'tweetgrid auth login' or TWEETGRID_API_TOKEN")
	fmt.Println("rather than committing it to the file.")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	cfg, err := config.Load(configFile, nil)
	if err != nil {
		ui.PrintError("Failed to load configuration", err.Error())
		os.Exit(1)
	}

	// Never print the real token.
	if cfg.API.Token != "" {
		cfg.API.Token = maskToken(cfg.API.Token)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		ui.PrintError("Failed to render configuration", err.Error())
		os.Exit(1)
	}

	ui.PrintHighlight("Current configuration")
	fmt.Println()
	fmt.Print(string(data))
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	configPath := configFile
	if configPath == "" {
		configPath = "tweetgrid.yaml"
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		ui.PrintError("Configuration file not found", configPath)
		os.Exit(1)
	}

	cfg := config.DefaultConfig()
	if err := cfg.LoadFromFile(configPath); err != nil {
		ui.PrintError("Invalid configuration file", err.Error())
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		ui.PrintError("Configuration validation failed", err.Error())
		os.Exit(1)
	}

	ui.PrintSuccess("Configuration is valid: " + configPath)
}
