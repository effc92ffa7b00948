/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"strings"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

var (
	addDue        string
	addImportance string
	addHours      string
	addDeps       []string
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add [title]",
	Short: "Add a new task",
	Long: `Add a new task. Title and due date are required.

Importance is 1-10 (default 5) and estimated hours must be positive (default 1);
values outside those ranges fall back to the defaults. Dependencies are task ids.

When run on a terminal without a title, you are prompted for each field.

Examples:
  smarttask add "Write report" --due 2025-12-01 --importance 8 --hours 3
  smarttask add "Ship release" --due 2025-12-05 --deps 1764320400000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		in := task.Input{
			Title:          strings.Join(args, " "),
			DueDate:        addDue,
			Importance:     addImportance,
			EstimatedHours: addHours,
			Dependencies:   addDeps,
		}
		if strings.TrimSpace(in.Title) == "" && canPrompt() {
			if err := promptTaskInput(&in); err != nil {
				return err
			}
		}

		return withSession(cmd.Context(), func(s *session) error {
			res, err := s.app.Dispatch(cmd.Context(), app.AddTask{Input: in})
			if err != nil {
				return err
			}
			return printResult(res)
		})
	},
}

// promptTaskInput asks for the fields that were not given as flags.
func promptTaskInput(in *task.Input) error {
	required := func(s string) error {
		if strings.TrimSpace(s) == "" {
			return errors.New("required")
		}
		return nil
	}
	date := func(s string) error {
		_, err := task.ParseDate(strings.TrimSpace(s))
		return err
	}

	fields := []struct {
		label    string
		value    *string
		validate promptui.ValidateFunc
	}{
		{"Title", &in.Title, required},
		{"Due date (YYYY-MM-DD)", &in.DueDate, date},
		{"Importance (1-10)", &in.Importance, nil},
		{"Estimated hours", &in.EstimatedHours, nil},
	}
	for _, f := range fields {
		if strings.TrimSpace(*f.value) != "" {
			continue
		}
		prompt := promptui.Prompt{Label: f.label, Validate: f.validate}
		v, err := prompt.Run()
		if err != nil {
			return err
		}
		*f.value = v
	}
	return nil
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringVarP(&addDue, "due", "d", "", "due date (YYYY-MM-DD)")
	addCmd.Flags().StringVarP(&addImportance, "importance", "i", "", "importance 1-10 (default 5)")
	addCmd.Flags().StringVarP(&addHours, "hours", "e", "", "estimated hours (default 1)")
	addCmd.Flags().StringSliceVar(&addDeps, "deps", nil, "comma-separated ids of tasks this one depends on")
}
