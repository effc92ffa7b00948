/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"

	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/spf13/cobra"
)

// tuiCmd represents the tui command
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive task view",
	Long: `Open the interactive view: add, complete, delete, clear, import and analyze
tasks from one screen. The list reloads when another smarttask process
changes the task file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.IsInteractive() {
			return errors.New("the interactive view needs a terminal; use the other commands in scripts")
		}
		return withSession(cmd.Context(), func(s *session) error {
			return ui.RunTUI(cmd.Context(), s.app, s.adapter.WatchPath())
		})
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}
