package cmd

import (
	"context"
	"fmt"
	"os"

	"class-timetable/internal/config"
	"class-timetable/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Database migration management",
	Long:  "Manage database migrations for the class timetable schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Run pending migrations",
	Long:  "Execute all pending database migrations",
	Run:   runMigrateUp,
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show migration status",
	Long:  "Display the status of all migrations",
	Run:   runMigrateStatus,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateStatusCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) {
	cfg := config.Get()
	ctx := context.Background()

	be, err := openBackend(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer be.Close()

	applied, err := be.migrator.RunMigrations(ctx)
	if err != nil {
		logger.Error("Migration failed: %v", err)
		os.Exit(1)
	}

	fmt.Printf("Migrations completed successfully! (%d applied)\n", applied)
}

func runMigrateStatus(cmd *cobra.Command, args []string) {
	cfg := config.Get()
	ctx := context.Background()

	be, err := openBackend(ctx, cfg.Database)
	if err != nil {
		logger.Error("Failed to connect to database: %v", err)
		os.Exit(1)
	}
	defer be.Close()

	migrations, err := be.migrator.GetMigrationStatus(ctx)
	if err != nil {
		logger.Error("Failed to get migration status: %v", err)
		os.Exit(1)
	}

	fmt.Println("Migration Status:")
	fmt.Println("================")
	for _, migration := range migrations {
		status := "Pending"
		if migration.AppliedAt != nil {
			status = fmt.Sprintf("Applied at %s", migration.AppliedAt.Format("2006-01-02 15:04:05"))
		}
		fmt.Printf("%s - %s [%s]\n", migration.ID, migration.Description, status)
	}
}
