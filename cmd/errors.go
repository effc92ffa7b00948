package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/task"
	"github.com/manifoldco/promptui"
)

// errCancelled is returned when the user declines a confirmation prompt.
var errCancelled = errors.New("cancelled by user")

// HandleFatalError handles unrecoverable errors that should terminate the application.
func HandleFatalError(userMsg string, technicalErr error) {
	PrintError(userMsg, technicalErr)
	os.Exit(1)
}

// PrintError prints an error message without exiting, allowing for recovery.
func PrintError(userMsg string, technicalErr error) {
	if isVerbose() && technicalErr != nil {
		// In verbose mode, print the detailed, underlying technical error.
		fmt.Fprintf(os.Stderr, "Error: %v\n", technicalErr)
		return
	}
	fmt.Fprintln(os.Stderr, userMsg)
}

// LogError logs an error without printing to stderr if verbose mode is off.
func LogError(msg string, err error) {
	if !isVerbose() {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "[DEBUG] %s\n", msg)
	}
}

// friendlyMessage maps known errors to the text shown without --verbose.
func friendlyMessage(err error) string {
	var ve *task.ValidationError
	if errors.As(err, &ve) {
		return "Error: " + ve.Error()
	}
	if se, ok := analysis.AsServiceError(err); ok {
		return "Error: " + se.Message
	}

	switch {
	case errors.Is(err, task.ErrNotFound):
		return "Error: no task with that id. Run 'smarttask list' to see ids."
	case errors.Is(err, task.ErrDuplicateID):
		return "Error: a task with that id already exists."
	case errors.Is(err, app.ErrNoTasks):
		return "Error: please add some tasks first."
	case errors.Is(err, app.ErrAnalysisDisabled):
		return "Error: analysis is disabled (set analysis.enabled to true)."
	case errors.Is(err, app.ErrNotConfirmed):
		return "Error: refusing to clear without confirmation (use --force when not on a terminal)."
	case errors.Is(err, errCancelled), errors.Is(err, promptui.ErrInterrupt), errors.Is(err, promptui.ErrAbort):
		return "Cancelled."
	default:
		return "Error: " + err.Error()
	}
}
