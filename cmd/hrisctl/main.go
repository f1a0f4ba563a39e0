package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/datavista/hris-backend-go/internal/app"
	"github.com/datavista/hris-backend-go/internal/config"
	"github.com/datavista/hris-backend-go/internal/fixtures"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/spf13/cobra"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrisctl",
		Short:         "Database administration for the HRIS backend",
		SilenceUsage:  true,
	}
	root.AddCommand(newMigrateCmd(), newSeedCmd())
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.SlogLevel()})))
	if cfg.Database.Driver != config.StorageDriverPostgres {
		return nil, fmt.Errorf("hrisctl needs the %q storage driver, got %q", config.StorageDriverPostgres, cfg.Database.Driver)
	}
	return cfg, nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:       "migrate [up|down|status|reset]",
		Short:     "Run schema migrations",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{database.MigrateUp, database.MigrateDown, database.MigrateStatus, database.MigrateReset},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if err := database.Migrate(cmd.Context(), cfg.DatabaseURL(), args[0]); err != nil {
				return err
			}
			slog.Info("Migration finished", "command", args[0])
			return nil
		},
	}
}

func newSeedCmd() *cobra.Command {
	var reset bool
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load the demo dataset",
		Long:  "Load the demo users, employees, tasks and attendance. Refuses to run when the demo admin already exists unless --reset is given.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			dsn := cfg.DatabaseURL()

			if reset {
				if err := database.Migrate(ctx, dsn, database.MigrateReset); err != nil {
					return err
				}
			}
			if err := database.Migrate(ctx, dsn, database.MigrateUp); err != nil {
				return err
			}

			db, err := database.NewPostgreSQLDB(ctx, dsn)
			if err != nil {
				return fmt.Errorf("connect to database: %w", err)
			}
			defer db.Close()

			ids, err := fixtures.Seed(ctx, app.PostgresRepositories(db))
			if errors.Is(err, fixtures.ErrAlreadySeeded) {
				return fmt.Errorf("%w; rerun with --reset to recreate it", err)
			}
			if err != nil {
				return err
			}
			slog.Info("Demo data seeded",
				"admin_user_id", ids.AdminUserID,
				"employee_user_id", ids.EmployeeUserID,
				"employees", len(ids.EmployeeIDs),
				"tasks", ids.TaskCount,
				"attendance", ids.AttendanceCount,
			)
			return nil
		},
	}
	cmd.Flags().BoolVar(&reset, "reset", false, "drop all tables before seeding")
	return cmd
}
