package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"remont/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage remont configuration",
	Long:  "View and update remote function endpoints, timeouts, logging and voice settings",
}

var configGetCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Get configuration value",
	Long:  "Display one configuration value, or all of them with their environment overrides",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			value, err := globalConfig.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		}

		fmt.Println("Current configuration:")
		for _, key := range config.Keys() {
			value, _ := globalConfig.Get(key)
			fmt.Printf("%-24s %-40s %s\n", key, value, config.EnvName(key))
		}
		if globalConfig.AdminToken != "" {
			fmt.Println("Admin token: set through REMONT_ADMIN_TOKEN")
		}
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		// Environment overrides stay out of the saved file
		cfg, err := config.ReadFile(configPath)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}

		old, err := cfg.Get(args[0])
		if err != nil {
			return err
		}
		if err := cfg.Set(args[0], args[1]); err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := cfg.Save(configPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Printf("%s updated: %s -> %s\n", args[0], old, args[1])
		return nil
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long:  "Create a new configuration file with default values",
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, err := os.Stat(configPath); err == nil {
			fmt.Println("Configuration file already exists.")
			fmt.Println("Use 'remont config set' to modify existing configuration.")
			return nil
		}

		if err := config.Default().Save(configPath); err != nil {
			return fmt.Errorf("failed to save configuration: %w", err)
		}

		fmt.Println("Configuration initialized successfully.")
		fmt.Printf("Configuration file created at: %s\n", configPath)
		return nil
	},
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show configuration file paths",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := config.GetConfigDir()
		if err != nil {
			return err
		}
		sessionPath := filepath.Join(dir, "session.json")

		fmt.Printf("- Config directory: %s\n", dir)
		fmt.Printf("- Config file: %s (%s)\n", configPath, existence(configPath))
		fmt.Printf("- Session file: %s (%s)\n", sessionPath, existence(sessionPath))
		if cwd, err := os.Getwd(); err == nil {
			envPath := filepath.Join(cwd, ".env")
			fmt.Printf("- Environment file: %s (%s)\n", envPath, existence(envPath))
		}
		return nil
	},
}

func existence(path string) string {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "does not exist"
	}
	return "exists"
}

func init() {
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}
