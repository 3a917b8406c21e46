package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/nurse-roster/cmd/cli/commands"
	"github.com/jakechorley/nurse-roster/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{Ctx: context.Background()}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "cli",
		Short: "Nurse roster CLI - Rank positions and manage rostering scenarios",
		Long: `A CLI tool for nurse rostering scenarios: loading instances, ranking job
positions by skill dominance, slicing wishes off and storing scenarios.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			app.Close()
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print debug logs to the console")

	rootCmd.AddCommand(commands.RankPositionsCmd(app))
	rootCmd.AddCommand(commands.ShowScenarioCmd(app))
	rootCmd.AddCommand(commands.SlicePreferencesCmd(app))
	rootCmd.AddCommand(commands.ImportScenarioCmd(app))
	rootCmd.AddCommand(commands.ListScenariosCmd(app))
	rootCmd.AddCommand(commands.RankStoredCmd(app))
	rootCmd.AddCommand(commands.ShowRankingCmd(app))
	rootCmd.AddCommand(commands.ImportSheetCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up the logger; config, database and clients are created by the
// commands that need them
func initApp() error {
	logger, err := logging.New(logging.Options{Env: env, Verbose: verbose})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Env = env
	app.Logger = logger
	app.Logger.Info("Starting application", zap.String("environment", env))
	return nil
}
