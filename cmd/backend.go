package cmd

import (
	"context"
	"fmt"

	"class-timetable/internal/config"
	"class-timetable/internal/infrastructure/database"
	"class-timetable/internal/infrastructure/repository"
	"class-timetable/internal/infrastructure/repository/sqlstore"
	interfaces "class-timetable/internal/interfaces/infrastructure"
	"class-timetable/pkg/logger"
)

// backend is an opened database together with its repositories and migration runner.
type backend struct {
	stores   interfaces.Stores
	migrator *database.MigrationRunner
}

// openBackend connects to the database selected by cfg.Driver and cfg.ORM.
func openBackend(ctx context.Context, cfg config.DatabaseConfig) (*backend, error) {
	switch cfg.ORM {
	case "gorm":
		db, err := database.NewConnection(cfg)
		if err != nil {
			return nil, err
		}
		if err := database.HealthCheck(ctx, db); err != nil {
			return nil, fmt.Errorf("database is not reachable: %w", err)
		}

		sqlDB, err := database.SQLXFromGorm(db)
		if err != nil {
			return nil, err
		}
		runner, err := database.NewMigrationRunner(sqlDB, database.DialectPostgres)
		if err != nil {
			return nil, err
		}

		logger.Info("Connected to %s via gorm", cfg.Driver)
		return &backend{stores: repository.NewStores(db), migrator: runner}, nil

	case "sqlx":
		db, err := database.OpenSQLX(ctx, cfg)
		if err != nil {
			return nil, err
		}
		runner, err := database.NewMigrationRunner(db, cfg.Driver)
		if err != nil {
			db.Close()
			return nil, err
		}

		logger.Info("Connected to %s via sqlx", cfg.Driver)
		return &backend{stores: sqlstore.NewStores(db), migrator: runner}, nil

	default:
		return nil, fmt.Errorf("unsupported orm %q", cfg.ORM)
	}
}

func (b *backend) Close() {
	if err := b.stores.Close(); err != nil {
		logger.Warn("Failed to close database: %v", err)
	}
}
