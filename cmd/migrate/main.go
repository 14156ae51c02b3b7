package main

// Manage database migrations:
//   go run ./cmd/migrate up
//   go run ./cmd/migrate down
//   go run ./cmd/migrate status

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"os"

	"github.com/peterbourgon/ff/v3/ffcli"

	"nurture-backend/internal/shared/config"
	"nurture-backend/internal/shared/storage/db"
)

func main() {
	root := &ffcli.Command{
		ShortUsage: "migrate <up|down|status>",
		FlagSet:    flag.NewFlagSet("migrate", flag.ExitOnError),
		Subcommands: []*ffcli.Command{
			command("up", "apply all pending migrations", db.RunMigrations),
			command("down", "roll back the most recent migration", db.RollbackMigration),
			command("status", "print the state of each migration", db.MigrationStatus),
		},
		Exec: func(ctx context.Context, args []string) error {
			return withDB(ctx, db.RunMigrations)
		},
	}

	if err := root.ParseAndRun(context.Background(), os.Args[1:]); err != nil {
		log.Printf("migrate: %v", err)
		os.Exit(1)
	}
}

func command(name, help string, fn func(context.Context, *sql.DB) error) *ffcli.Command {
	return &ffcli.Command{
		Name:       name,
		ShortUsage: "migrate " + name,
		ShortHelp:  help,
		Exec: func(ctx context.Context, args []string) error {
			return withDB(ctx, fn)
		},
	}
}

func withDB(ctx context.Context, fn func(context.Context, *sql.DB) error) error {
	cfg := config.Load()
	opts := db.OptionsFromEnv(db.DefaultMigrateOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return fn(ctx, sqlDB)
}
