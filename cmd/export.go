/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/export"
	"github.com/spf13/cobra"
)

var (
	exportFormat  string
	exportOutput  string
	exportAnalyze bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export a task report as JSON, CSV or PDF",
	Long: `Export every task with its urgency, importance and effort. With --analyze the
tasks are scored first and the report carries ranks, scores and tiers.

The format defaults to the extension of --output, then to json.

Examples:
  smarttask export -o tasks.csv
  smarttask export --analyze -o report.pdf
  smarttask export --format json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format := exportFormat
		if format == "" {
			format = strings.TrimPrefix(filepath.Ext(exportOutput), ".")
		}
		if format == "" {
			format = export.FormatJSON
		}

		return withSession(cmd.Context(), func(s *session) error {
			if exportAnalyze {
				if _, err := s.app.Dispatch(cmd.Context(), app.Analyze{}); err != nil {
					return fmt.Errorf("analyze before export: %w", err)
				}
			}
			report := export.NewReport(s.app.Tasks(), s.app.LastAnalysis(), s.app.Today())

			var w io.Writer = os.Stdout
			toFile := exportOutput != "" && exportOutput != "-"
			if toFile {
				f, err := os.Create(exportOutput)
				if err != nil {
					return fmt.Errorf("create %s: %w", exportOutput, err)
				}
				defer func() { _ = f.Close() }()
				w = f
			}
			if err := export.Write(w, format, report); err != nil {
				return err
			}

			if toFile && !isQuiet() {
				fmt.Fprintf(os.Stderr, "✓ Exported %d tasks to %s\n", len(report.Tasks.Items), exportOutput)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "json, csv or pdf")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&exportAnalyze, "analyze", false, "analyze before exporting")
}
