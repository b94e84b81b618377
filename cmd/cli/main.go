package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/phongzhu/e-elyon/cmd/cli/commands"
	"github.com/phongzhu/e-elyon/internal/config"
	"github.com/phongzhu/e-elyon/pkg/core/staffing"
	"github.com/phongzhu/e-elyon/pkg/db"
	"github.com/phongzhu/e-elyon/pkg/postgres"
	"github.com/phongzhu/e-elyon/pkg/sqlite"
	"github.com/phongzhu/e-elyon/pkg/utils/logging"
)

var env string

func main() {
	app := &commands.AppContext{}

	rootCmd := &cobra.Command{
		Use:   "elyon",
		Short: "E-Elyon staffing CLI - Staff ministry tasks",
		Long:  `A CLI for defining role slots on ministry tasks, reviewing candidates and assigning members.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp(app)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if app.Database != nil {
				app.Database.Close()
			}
			if app.Logger != nil {
				app.Logger.Sync()
			}
		},
	}

	// Add persistent environment flag
	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: dev, test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")

	// Add all commands
	rootCmd.AddCommand(commands.MigrateCmd(app))
	rootCmd.AddCommand(commands.ServeCmd(app))
	rootCmd.AddCommand(commands.SlotsCmd(app))
	rootCmd.AddCommand(commands.CandidatesCmd(app))
	rootCmd.AddCommand(commands.AssignCmd(app))
	rootCmd.AddCommand(commands.ProfilesCmd(app))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initApp sets up config, logger, evaluator, and database
func initApp(app *commands.AppContext) error {
	var err error
	app.Ctx = context.Background()

	// Load configuration
	app.Cfg, err = config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	app.Logger, err = logging.InitLogger(env, app.Cfg.Logging.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	app.Logger.Info("Starting application", zap.String("environment", env))
	app.Logger.Debug("Configuration loaded successfully")

	// Build the evaluator
	loc, err := app.Cfg.Location()
	if err != nil {
		return err
	}
	synonyms := staffing.DefaultSynonyms().Merge(app.Cfg.Staffing.RoleSynonyms)
	app.Evaluator = staffing.NewEvaluator(synonyms, loc)
	app.Logger.Debug("Evaluator initialized",
		zap.String("timezone", loc.String()),
		zap.Int("synonym_roles", synonyms.Len()))

	// Connect to database
	app.Logger.Info("Connecting to database", zap.String("driver", app.Cfg.Database.Driver))
	app.Database, err = openDatabase(app.Ctx, app.Cfg.Database)
	if err != nil {
		return err
	}
	app.Logger.Info("Database initialized successfully")

	return nil
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig) (db.Database, error) {
	switch cfg.Driver {
	case "sqlite":
		database, err := sqlite.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return database, nil
	default:
		database, err := postgres.NewDB(ctx, cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil
	}
}
