/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/spf13/cobra"
)

var deleteForce bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a task",
	Long: `Delete a task by id. On a terminal you are asked to confirm unless --force is set.
Dependencies on the deleted task are left in place.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id := task.ID(args[0])
		return withSession(cmd.Context(), func(s *session) error {
			if !deleteForce && canPrompt() {
				t, ok := findTask(s.app.Tasks(), id)
				if !ok {
					return fmt.Errorf("%w: %s", task.ErrNotFound, id)
				}
				if err := confirm(fmt.Sprintf("Delete %q", t.Title)); err != nil {
					return err
				}
			}

			res, err := s.app.Dispatch(cmd.Context(), app.DeleteTask{ID: id})
			if err != nil {
				return err
			}
			return printResult(res)
		})
	},
}

func findTask(tasks []task.Task, id task.ID) (task.Task, bool) {
	for _, t := range tasks {
		if t.ID == id {
			return t, true
		}
	}
	return task.Task{}, false
}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteForce, "force", "f", false, "skip the confirmation prompt")
}
