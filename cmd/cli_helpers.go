package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/josephgoksu/smarttask/internal/analysis"
	"github.com/josephgoksu/smarttask/internal/app"
	"github.com/josephgoksu/smarttask/internal/storage"
	"github.com/josephgoksu/smarttask/internal/telemetry"
	"github.com/josephgoksu/smarttask/internal/ui"
	"github.com/manifoldco/promptui"
	"github.com/spf13/viper"
)

func isJSON() bool {
	return viper.GetBool("json")
}

func isQuiet() bool {
	return viper.GetBool("quiet")
}

func isVerbose() bool {
	return viper.GetBool("verbose")
}

func printJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))
	return nil
}

// canPrompt reports whether confirmation prompts may be shown.
func canPrompt() bool {
	return !isJSON() && ui.IsInteractive()
}

// confirm asks a yes/no question. A "no" answer returns errCancelled.
func confirm(label string) error {
	prompt := promptui.Prompt{Label: label, IsConfirm: true}
	if _, err := prompt.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			return errCancelled
		}
		return err
	}
	return nil
}

// session is the wired application for one command run.
type session struct {
	app       *app.TaskApp
	adapter   *storage.Adapter
	telemetry telemetry.Client
}

// openSession opens the configured slot and analysis client and loads the tasks.
func openSession(ctx context.Context) (*session, error) {
	adapter, err := storage.OpenAdapter(appConfig.StorageOptions(), appLogger)
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", appConfig.Storage.Backend, err)
	}

	var analyzer app.Analyzer
	if appConfig.Analysis.Enabled {
		ac := appConfig.AnalysisClientConfig()
		ac.Logger = appLogger
		client, err := analysis.New(ac)
		if err != nil {
			_ = adapter.Close()
			return nil, fmt.Errorf("configure analysis client: %w", err)
		}
		analyzer = client
	}

	tel := telemetry.Open(appConfig.TelemetrySettings(version))
	tel.Track(telemetry.EventSessionStart, telemetry.Properties{"backend": appConfig.Storage.Backend})

	c := app.NewContext(adapter, analyzer)
	c.Logger = appLogger
	c.Telemetry = tel

	return &session{
		app:       app.NewTaskApp(ctx, c),
		adapter:   adapter,
		telemetry: tel,
	}, nil
}

func (s *session) Close() {
	if err := s.telemetry.Close(); err != nil {
		LogError("flush telemetry", err)
	}
	if err := s.adapter.Close(); err != nil {
		LogError("close storage", err)
	}
}

// printResult prints a dispatch result in the selected output mode.
func printResult(res *app.TaskResult) error {
	if isJSON() {
		return printJSON(res)
	}
	if isQuiet() {
		return nil
	}
	if res.Message != "" {
		fmt.Println(ui.StyleSuccess.Render("✓ " + res.Message))
	}
	if res.AnalysisError != "" {
		fmt.Fprintln(os.Stderr, ui.StyleWarning.Render("⚠ Analysis failed: "+res.AnalysisError))
	}
	if res.Analysis != nil {
		fmt.Println()
		ui.RenderResults(os.Stdout, ui.ProjectResults(res.Analysis))
	}
	return nil
}

// withSession opens a session, runs fn and closes the session.
func withSession(ctx context.Context, fn func(*session) error) error {
	s, err := openSession(ctx)
	if err != nil {
		return err
	}
	defer s.Close()
	return fn(s)
}
