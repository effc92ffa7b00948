/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/telemetry"
	"github.com/spf13/cobra"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage SmartTask's anonymous telemetry settings.

When enabled, SmartTask records which commands run and whether they succeeded.
Task titles and other content are never sent. Events are only sent when
telemetry.enabled and telemetry.apiKey are also set in the configuration.

Use 'smarttask config telemetry status' to see current settings.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := telemetry.Load()
		if err != nil {
			return fmt.Errorf("failed to read telemetry status: %w", err)
		}
		if isJSON() {
			return printJSON(cfg)
		}

		switch {
		case cfg.NeedsConsent():
			fmt.Println("📊 Telemetry: not configured (off)")
			fmt.Println("   To enable: smarttask config telemetry enable")
		case cfg.IsEnabled():
			fmt.Println("📊 Telemetry: enabled")
			fmt.Printf("   Anonymous ID: %s\n", cfg.AnonymousID)
			if !appConfig.Telemetry.Enabled || appConfig.Telemetry.APIKey == "" {
				fmt.Println("   No events are sent: telemetry.enabled or telemetry.apiKey is not set.")
			}
			fmt.Println()
			fmt.Println("   To disable: smarttask config telemetry disable")
		default:
			fmt.Println("📊 Telemetry: disabled")
			fmt.Println()
			fmt.Println("   To enable: smarttask config telemetry enable")
		}
		return nil
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(true); err != nil {
			return fmt.Errorf("failed to enable telemetry: %w", err)
		}
		fmt.Println("✅ Telemetry enabled. Thank you for helping improve SmartTask!")
		return nil
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := setTelemetry(false); err != nil {
			return fmt.Errorf("failed to disable telemetry: %w", err)
		}
		fmt.Println("✅ Telemetry disabled.")
		return nil
	},
}

func setTelemetry(enabled bool) error {
	cfg, err := telemetry.Load()
	if err != nil {
		return err
	}
	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	return cfg.Save()
}

func init() {
	// Add telemetry command under config
	configCmd.AddCommand(telemetryCmd)

	// Add subcommands under telemetry
	telemetryCmd.AddCommand(telemetryStatusCmd)
	telemetryCmd.AddCommand(telemetryEnableCmd)
	telemetryCmd.AddCommand(telemetryDisableCmd)
}
