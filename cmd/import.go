/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/spf13/cobra"
)

var importNoAnalyze bool

// importCmd represents the import command
var importCmd = &cobra.Command{
	Use:   "import <file|->",
	Short: "Replace all tasks with a JSON array",
	Long: `Replace all tasks with the JSON array in <file> ("-" reads stdin).

Every element needs a title and a due_date; the first element missing one
aborts the import and leaves the current tasks untouched. Elements without
an id get one assigned. After a successful import the tasks are analyzed
unless --no-analyze is set; an analysis failure does not undo the import.

Example file:
  [
    {"title": "Fix login bug", "due_date": "2025-11-30", "importance": 8, "estimated_hours": 3},
    {"title": "Write docs", "due_date": "2025-12-05", "dependencies": [1]}
  ]`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0])
		if err != nil {
			return err
		}

		return withSession(cmd.Context(), func(s *session) error {
			analyze := !importNoAnalyze && appConfig.Analysis.Enabled
			res, err := s.app.Dispatch(cmd.Context(), app.ImportJSON{Data: data, Analyze: analyze})
			if err != nil {
				return err
			}
			return printResult(res)
		})
	},
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return data, nil
}

func init() {
	rootCmd.AddCommand(importCmd)
	importCmd.Flags().BoolVar(&importNoAnalyze, "no-analyze", false, "skip the analysis after importing")
}
