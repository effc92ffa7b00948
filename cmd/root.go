/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/josephgoksu/smarttask/internal/config"
	"github.com/josephgoksu/smarttask/internal/logger"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// cfgFile is the path to the configuration file.
	cfgFile string
	// verbose enables verbose output.
	verbose bool
	// version is the application version, overridden at build time.
	version = "0.1.0"

	// appConfig and appLogger are set by initApp before any command runs.
	appConfig *config.Config
	appLogger *slog.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "smarttask",
	Short: "SmartTask manages your tasks and ranks them by priority.",
	Long: `SmartTask is a terminal-first task manager. Add tasks with a due date,
importance and estimated effort, then analyze them with the scoring service
to get a prioritized list and suggestions for what to do next.

Run 'smarttask tui' for the interactive view.`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	defer logger.HandlePanic()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		PrintError(friendlyMessage(err), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./.smarttask/.smarttask.yaml or $HOME/.smarttask.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	rootCmd.PersistentFlags().Bool("json", false, "print machine-readable JSON")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "print only errors")

	// Bind persistent flags to Viper
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	_ = viper.BindPFlag("json", rootCmd.PersistentFlags().Lookup("json"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
}

// initApp loads configuration, sets up logging and records crash context.
func initApp(cmd *cobra.Command, args []string) error {
	run := logger.RunInfo{Version: version, Command: cmd.CommandPath()}
	logger.SetRunInfo(run, args)

	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if err != nil {
		return err
	}

	level := cfg.Log.Level
	if isVerbose() {
		level = "debug"
	}
	log, err := logger.New(os.Stderr, level, cfg.Log.Format)
	if err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	slog.SetDefault(log)
	if used := viper.ConfigFileUsed(); used != "" {
		log.Debug("using config file", "path", used)
	}

	run.Backend = cfg.Storage.Backend
	run.DataDir = config.ResolveDataDir(cfg.Storage.Dir)
	logger.SetRunInfo(run, args)

	appConfig, appLogger = cfg, log
	return nil
}
