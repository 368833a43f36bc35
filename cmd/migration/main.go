package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fadedpez/neonroyal/internal/logging"
	"github.com/fadedpez/neonroyal/pkg/db/migrations"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	// Define command-line flags
	migrateCmd := flag.NewFlagSet("migrate", flag.ExitOnError)
	statusCmd := flag.NewFlagSet("status", flag.ExitOnError)

	migrateDB := migrateCmd.String("db", "data/profile.db", "Path to SQLite profile database")
	statusDB := statusCmd.String("db", "data/profile.db", "Path to SQLite profile database")

	// Show usage if no arguments provided
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	logger := logging.NewLogger(logging.INFO)

	// Parse command
	switch os.Args[1] {
	case "migrate":
		migrateCmd.Parse(os.Args[2:])
		applyMigrations(ctx, *migrateDB, logger)

	case "status":
		statusCmd.Parse(os.Args[2:])
		showStatus(ctx, *statusDB, logger)

	case "help":
		printUsage()

	default:
		fmt.Printf("Error: Unknown command '%s'\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  migration migrate [-db PATH]  - Apply pending migrations")
	fmt.Println("  migration status [-db PATH]   - List applied and pending migrations")
	fmt.Println("  migration help                - Show this help")
}

func openDB(dbPath string) *sql.DB {
	// Ensure database directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		log.Fatalf("Error creating database directory: %v", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		log.Fatalf("Error opening database: %v", err)
	}
	return db
}

func applyMigrations(ctx context.Context, dbPath string, logger *logging.Logger) {
	db := openDB(dbPath)
	defer db.Close()

	applied, err := migrations.NewMigrator(db, logger).MigrateUp(ctx)
	if err != nil {
		log.Fatalf("Error applying migrations: %v", err)
	}

	fmt.Printf("Applied %d migration(s)\n", applied)
}

func showStatus(ctx context.Context, dbPath string, logger *logging.Logger) {
	db := openDB(dbPath)
	defer db.Close()

	migrator := migrations.NewMigrator(db, logger)
	if err := migrator.Initialize(ctx); err != nil {
		log.Fatalf("Error initializing migrations table: %v", err)
	}

	applied, err := migrator.AppliedMigrations(ctx)
	if err != nil {
		log.Fatalf("Error reading applied migrations: %v", err)
	}

	available, err := migrator.LoadMigrations()
	if err != nil {
		log.Fatalf("Error loading migrations: %v", err)
	}

	for _, m := range available {
		state := "pending"
		if applied[m.Version] {
			state = "applied"
		}
		fmt.Printf("  %s  %-8s %s\n", m.Version, state, m.Description)
	}
}
