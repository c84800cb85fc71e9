package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/drivenpass/drivenpass-go/internal/config"
	"github.com/drivenpass/drivenpass-go/internal/logging"
	"github.com/drivenpass/drivenpass-go/internal/repository"
)

var dsn string

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the DrivenPass database schema",
	Long: `Applies, rolls back and reports the embedded schema migrations.

Examples:
  # Apply every pending migration
  migrate up

  # Roll back the latest migration against a specific database
  migrate down --dsn 'user:pass@tcp(db:3306)/drivenpass'`,
	SilenceUsage: true,
}

func newMigrationCmd(use, short string, run func(ctx context.Context, db *sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := repository.NewDB(cmd.Context(), dsn)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := run(cmd.Context(), db); err != nil {
				return fmt.Errorf("%s: %w", use, err)
			}
			slog.Info("migration command finished", "command", use)
			return nil
		},
	}
}

func main() {
	if err := godotenv.Load(); err != nil {
		slog.Warn("no .env file found, using environment variables")
	}
	cfg := config.Load()
	logging.Init(cfg.LogLevel, cfg.LogFormat)

	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", cfg.DatabaseDSN, "MySQL DSN (defaults to DATABASE_DSN)")
	rootCmd.AddCommand(
		newMigrationCmd("up", "Apply all pending migrations", repository.MigrateUp),
		newMigrationCmd("down", "Roll back the most recent migration", repository.MigrateDown),
		newMigrationCmd("status", "Show the state of every migration", repository.MigrationStatus),
	)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
