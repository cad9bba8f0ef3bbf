package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sarahbetts/fieldrota/cmd/cli/commands"
	"github.com/sarahbetts/fieldrota/internal/config"
	"github.com/sarahbetts/fieldrota/pkg/postgres"
	"github.com/sarahbetts/fieldrota/pkg/utils/logging"
)

var (
	env     string
	verbose bool
	app     = &commands.AppContext{}
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "fieldrota",
		Short: "Fieldrota CLI - Manage volunteer shift coverage",
		Long:  `A CLI tool for managing field volunteer shifts, coverage exceptions, and weekly coverage digests.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Logger != nil {
				app.Logger.Sync()
			}
			if app.Store != nil {
				app.Store.Close()
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug console output")
	rootCmd.MarkPersistentFlagRequired("env")

	rootCmd.AddCommand(commands.DigestBuildCmd(app))
	rootCmd.AddCommand(commands.DigestSendCmd(app))
	rootCmd.AddCommand(commands.ShiftRecomputeCmd(app))
	rootCmd.AddCommand(commands.ShiftReviewCmd(app))
	rootCmd.AddCommand(commands.ShiftReopenCmd(app))
	rootCmd.AddCommand(commands.ShiftSeedCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up logger, config, and the database connection
func initApp() error {
	var err error
	app.Ctx = context.Background()

	app.Logger, err = logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))

	app.Logger.Debug("Loading configuration")
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	app.Logger.Debug("Loading OAuth client configuration")
	app.OAuthCfg, err = config.LoadOAuthClientWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load OAuth client config: %w", err)
	}

	app.Logger.Debug("Connecting to database")
	app.Store, err = postgres.NewDB(app.Ctx, app.Cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := app.Store.RunMigrations(app.Ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	app.Logger.Debug("Application initialized")
	return nil
}
