// Package app assembles storage and services from configuration for the
// binaries under cmd/.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/datavista/hris-backend-go/internal/config"
	"github.com/datavista/hris-backend-go/internal/fixtures"
	"github.com/datavista/hris-backend-go/internal/pkg/database"
	"github.com/datavista/hris-backend-go/internal/repository/memory"
	"github.com/datavista/hris-backend-go/internal/repository/postgresql"
)

// Storage is the repository set for the configured driver plus a cleanup
// function releasing its resources.
type Storage struct {
	fixtures.Repositories
	Close func()
}

// OpenStorage connects the configured driver. The postgres driver runs
// pending migrations first when auto-migrate is on. The memory driver is
// seeded with demo data when configured.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	switch cfg.Database.Driver {
	case config.StorageDriverMemory:
		store := memory.NewStore()
		s := &Storage{
			Repositories: fixtures.Repositories{
				Transactor: store,
				Users:      store.Users(),
				Employees:  store.Employees(),
				Tasks:      store.Tasks(),
				Attendance: store.Attendance(),
			},
			Close: func() {},
		}
		if cfg.App.SeedDemoData {
			ids, err := fixtures.Seed(ctx, s.Repositories)
			if err != nil {
				return nil, fmt.Errorf("seed demo data: %w", err)
			}
			slog.Info("Demo data seeded", "employees", len(ids.EmployeeIDs), "tasks", ids.TaskCount, "attendance", ids.AttendanceCount)
		}
		return s, nil

	case config.StorageDriverPostgres:
		dsn := cfg.DatabaseURL()
		if cfg.Database.AutoMigrate {
			if err := database.Migrate(ctx, dsn, database.MigrateUp); err != nil {
				return nil, err
			}
		}
		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return nil, fmt.Errorf("connect to database: %w", err)
		}
		return &Storage{
			Repositories: PostgresRepositories(db),
			Close:        db.Close,
		}, nil
	}
	return nil, fmt.Errorf("unsupported storage driver %q", cfg.Database.Driver)
}

// PostgresRepositories binds every repository to one pool.
func PostgresRepositories(db database.Pool) fixtures.Repositories {
	return fixtures.Repositories{
		Transactor: postgresql.NewTransactor(db),
		Users:      postgresql.NewUserRepository(db),
		Employees:  postgresql.NewEmployeeRepository(db),
		Tasks:      postgresql.NewTaskRepository(db),
		Attendance: postgresql.NewAttendanceRepository(db),
	}
}
