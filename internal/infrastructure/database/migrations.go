package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"

	"class-timetable/pkg/logger"

	"github.com/jmoiron/sqlx"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationFiles embed.FS

type Migration struct {
	ID          string     `db:"id"`
	Description string     `db:"description"`
	SQL         string     `db:"-"`
	AppliedAt   *time.Time `db:"applied_at"`
}

type MigrationRunner struct {
	db      *sqlx.DB
	dialect string
	files   fs.FS
}

// NewMigrationRunner runs the embedded migrations for dialect
// (postgres or sqlite) against db.
func NewMigrationRunner(db *sqlx.DB, dialect string) (*MigrationRunner, error) {
	sub, err := fs.Sub(migrationFiles, path.Join("migrations", dialect))
	if err != nil {
		return nil, fmt.Errorf("no migrations for dialect %q: %w", dialect, err)
	}
	return &MigrationRunner{db: db, dialect: dialect, files: sub}, nil
}

func (mr *MigrationRunner) createMigrationsTable(ctx context.Context) error {
	appliedType := "TIMESTAMP WITH TIME ZONE"
	if mr.dialect == DialectSQLite {
		appliedType = "DATETIME"
	}

	query := fmt.Sprintf(`
	CREATE TABLE IF NOT EXISTS schema_migrations (
		id VARCHAR(255) PRIMARY KEY,
		description TEXT NOT NULL,
		applied_at %s NOT NULL
	);`, appliedType)

	_, err := mr.db.ExecContext(ctx, query)
	return err
}

func (mr *MigrationRunner) getAppliedMigrations(ctx context.Context) (map[string]time.Time, error) {
	var rows []Migration
	if err := mr.db.SelectContext(ctx, &rows, "SELECT id, description, applied_at FROM schema_migrations ORDER BY id"); err != nil {
		return nil, err
	}

	applied := make(map[string]time.Time, len(rows))
	for _, m := range rows {
		if m.AppliedAt != nil {
			applied[m.ID] = *m.AppliedAt
		} else {
			applied[m.ID] = time.Time{}
		}
	}
	return applied, nil
}

func (mr *MigrationRunner) getMigrationFiles() ([]string, error) {
	entries, err := fs.ReadDir(mr.files, ".")
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

func (mr *MigrationRunner) readMigrationFile(filename string) (*Migration, error) {
	content, err := fs.ReadFile(mr.files, filename)
	if err != nil {
		return nil, err
	}

	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 {
		return nil, fmt.Errorf("invalid migration filename format: %s", filename)
	}

	description := strings.TrimSuffix(parts[1], ".sql")
	description = strings.ReplaceAll(description, "_", " ")

	return &Migration{
		ID:          parts[0],
		Description: description,
		SQL:         string(content),
	}, nil
}

// RunMigrations applies pending migrations, each in its own transaction, and
// returns how many were applied.
func (mr *MigrationRunner) RunMigrations(ctx context.Context) (int, error) {
	if err := mr.createMigrationsTable(ctx); err != nil {
		return 0, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := mr.getAppliedMigrations(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := mr.getMigrationFiles()
	if err != nil {
		return 0, fmt.Errorf("failed to get migration files: %w", err)
	}

	pendingCount := 0
	for _, file := range files {
		migration, err := mr.readMigrationFile(file)
		if err != nil {
			return pendingCount, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if _, ok := applied[migration.ID]; ok {
			continue
		}

		if err := mr.apply(ctx, migration); err != nil {
			return pendingCount, err
		}

		logger.Info("Applied migration: %s - %s", migration.ID, migration.Description)
		pendingCount++
	}

	if pendingCount == 0 {
		logger.Info("No pending migrations to apply")
	} else {
		logger.Info("Successfully applied %d migrations", pendingCount)
	}

	return pendingCount, nil
}

func (mr *MigrationRunner) apply(ctx context.Context, migration *Migration) error {
	tx, err := mr.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin migration %s: %w", migration.ID, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
		return fmt.Errorf("failed to execute migration %s: %w", migration.ID, err)
	}

	record := tx.Rebind("INSERT INTO schema_migrations (id, description, applied_at) VALUES (?, ?, ?)")
	if _, err := tx.ExecContext(ctx, record, migration.ID, migration.Description, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", migration.ID, err)
	}

	return tx.Commit()
}

func (mr *MigrationRunner) GetMigrationStatus(ctx context.Context) ([]Migration, error) {
	if err := mr.createMigrationsTable(ctx); err != nil {
		return nil, fmt.Errorf("failed to create migrations table: %w", err)
	}

	applied, err := mr.getAppliedMigrations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get applied migrations: %w", err)
	}

	files, err := mr.getMigrationFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to get migration files: %w", err)
	}

	var migrations []Migration
	for _, file := range files {
		migration, err := mr.readMigrationFile(file)
		if err != nil {
			return nil, fmt.Errorf("failed to read migration file %s: %w", file, err)
		}

		if appliedAt, ok := applied[migration.ID]; ok {
			appliedAt := appliedAt
			migration.AppliedAt = &appliedAt
		}

		migrations = append(migrations, *migration)
	}

	return migrations, nil
}
