/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/josephgoksu/smarttask/internal/config"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// secretKeys are masked by 'config show'.
var secretKeys = map[string]bool{
	"storage.dsn":        true,
	"analysis.csrfToken": true,
	"telemetry.apiKey":   true,
}

// configCmd is the parent config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage SmartTask configuration",
	Long: `View and manage SmartTask configuration settings.

Settings come from (lowest to highest priority) built-in defaults, the config
file, a .env file and SMARTTASK_* environment variables, e.g.
SMARTTASK_ANALYSIS_BASEURL=http://scoring:8000.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		values := make(map[string]string, len(config.Keys))
		for _, key := range config.Keys {
			v := viper.GetString(key)
			if secretKeys[key] && v != "" {
				v = "********"
			}
			values[key] = v
		}
		if isJSON() {
			return printJSON(values)
		}

		t := &ui.Table{Headers: []string{"Key", "Value"}, MaxWidth: 60}
		for _, key := range config.Keys {
			t.Rows = append(t.Rows, []string{key, values[key]})
		}
		fmt.Print(t.Render())
		fmt.Printf("\nData directory: %s\n", config.ResolveDataDir(appConfig.Storage.Dir))
		if used := viper.ConfigFileUsed(); used != "" {
			fmt.Printf("Config file:    %s\n", used)
		}
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file in use (or the one 'config set' would create)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configWritePath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value in the config file",
	Long: "Set a configuration value in the config file.\n\nKeys:\n  " + strings.Join(config.Keys, "\n  "),
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := configWritePath()
		if err != nil {
			return err
		}
		if err := config.SetValue(path, args[0], args[1]); err != nil {
			return err
		}

		// Validate the result so a bad value is reported now, not on the next run.
		if _, err := config.Load(viper.New(), path); err != nil {
			fmt.Fprintf(os.Stderr, "⚠  %s now holds an invalid value: %v\n", path, err)
		}
		if !isQuiet() {
			fmt.Printf("✓ %s set in %s\n", args[0], path)
		}
		return nil
	},
}

// configWritePath is the file in use, or the global default when none was found.
func configWritePath() (string, error) {
	if used := viper.ConfigFileUsed(); used != "" {
		if _, err := os.Stat(used); err == nil {
			return used, nil
		}
	}
	if cfgFile != "" {
		return cfgFile, nil
	}
	return config.DefaultConfigPath()
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configSetCmd)
}
