package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"meal-planner/internal/clipper"
	"meal-planner/internal/config"
	"meal-planner/internal/console"
	"meal-planner/internal/database"
	"meal-planner/internal/meal"
	"meal-planner/internal/metrics"
	"meal-planner/internal/planner"
)

var (
	// Global flags
	dbPath     string
	verbose    bool
	legacyList bool
	// clip flags
	clipCategory string
	// metrics-cleanup flags
	cleanupDays int

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "meal-planner",
	Short: "Interactive weekly meal planner",
	Long: `meal-planner keeps a small SQLite catalog of meals and their
ingredients, assigns meals to the days of a week, and exports a
consolidated shopping list.

Run without arguments to start the interactive session.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// No .env file is fine, the environment still applies.
		_ = godotenv.Load()

		var err error
		cfg, err = config.NewFromEnv()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("db") {
			cfg.DatabasePath = dbPath
		}
		if legacyList {
			cfg.CompatList = true
		}

		logCfg := zap.NewProductionConfig()
		if verbose {
			logCfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		logger, err = logCfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		service := planner.NewService(meal.NewRepository(db.SQL), planner.NewPlanRepository(db.SQL))
		usage := metrics.NewStore(db.SQL)

		loop := console.NewLoop(service, usage, logger, os.Stdin, os.Stdout, cfg.CompatList)
		return loop.Run(cmd.Context())
	},
}

var clipCmd = &cobra.Command{
	Use:   "clip <url>",
	Short: "Import a recipe from a web page as a meal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, err := meal.ParseCategory(clipCategory)
		if err != nil {
			return err
		}

		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		service := planner.NewService(meal.NewRepository(db.SQL), planner.NewPlanRepository(db.SQL))
		rec, err := clipper.NewClipper(service).ClipURL(cmd.Context(), args[0], category)
		if err != nil {
			return err
		}

		fmt.Printf("Clipped %q with %d ingredients into %s.\n", rec.Title, len(rec.Ingredients), category)
		return nil
	},
}

var metricsCleanupCmd = &cobra.Command{
	Use:   "metrics-cleanup",
	Short: "Remove old command usage records",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.NewDB(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer db.Close()

		removed, err := metrics.NewStore(db.SQL).Cleanup(cmd.Context(), cleanupDays)
		if err != nil {
			return err
		}
		fmt.Printf("Successfully removed %d old usage records.\n", removed)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "meals.db", "path to the SQLite database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&legacyList, "legacy-list-format", false,
		"write shopping lists in the original format without newlines after quantity lines")

	clipCmd.Flags().StringVar(&clipCategory, "category", "dinner", "category for the clipped meal")
	metricsCleanupCmd.Flags().IntVar(&cleanupDays, "days", 30, "keep records for the last N days")

	rootCmd.AddCommand(clipCmd)
	rootCmd.AddCommand(metricsCleanupCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
