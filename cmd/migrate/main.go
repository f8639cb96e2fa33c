package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/morphofolio/backend/internal/config"
	"github.com/morphofolio/backend/internal/logging"
	"github.com/morphofolio/backend/internal/repository"
	"github.com/morphofolio/backend/migrations"
)

func usage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate [command]

Commands:
  (default)   apply pending migrations
  status      list applied and pending migrations
  reset       drop every table and recreate from the consolidated schema
  fresh       drop every table and apply all migrations in order`)
	os.Exit(1)
}

// execer is the subset of *pgxpool.Pool the migrator uses.
type execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logging.Setup(cfg.Logging.Level)

	if cfg.Database.Driver != config.DriverPostgres {
		logging.Fatal("migrate only supports postgres; the sqlite store creates its schema on open",
			"driver", cfg.Database.Driver)
	}

	cmd := ""
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	ctx := context.Background()
	pool, err := repository.NewPool(ctx, cfg.Database.URL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	fsys := migrations.FS
	switch cmd {
	case "":
		err = runIncremental(ctx, pool, fsys)
	case "status":
		err = printStatus(ctx, pool, fsys)
	case "reset":
		if err = runScript(ctx, pool, fsys, "000_drop_all.sql"); err == nil {
			err = runConsolidated(ctx, pool, fsys)
		}
	case "fresh":
		if err = runScript(ctx, pool, fsys, "000_drop_all.sql"); err == nil {
			err = runIncremental(ctx, pool, fsys)
		}
	default:
		usage()
	}
	if err != nil {
		logging.Fatal("migrate failed", "command", cmd, "error", err)
	}
}

// collectUpFiles returns the *.up.sql names in lexical order.
func collectUpFiles(fsys fs.FS) ([]string, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("read migrations: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func migrationName(filename string) string {
	return strings.TrimSuffix(filename, ".up.sql")
}

func ensureSchemaMigrations(ctx context.Context, db execer) error {
	_, err := db.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	if err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}
	return nil
}

func isApplied(ctx context.Context, db execer, name string) (bool, error) {
	var exists bool
	err := db.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", name, err)
	}
	return exists, nil
}

// runIncremental applies every migration not yet recorded in schema_migrations.
func runIncremental(ctx context.Context, db execer, fsys fs.FS) error {
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(fsys)
	if err != nil {
		return err
	}

	applied := 0
	for _, filename := range upFiles {
		name := migrationName(filename)
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return err
		}
		if done {
			continue
		}
		if err := runScript(ctx, db, fsys, filename); err != nil {
			return err
		}
		if _, err := db.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration applied", "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

// runConsolidated applies the consolidated schema and marks every migration as applied.
func runConsolidated(ctx context.Context, db execer, fsys fs.FS) error {
	if err := runScript(ctx, db, fsys, "000_consolidated.sql"); err != nil {
		return err
	}
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(fsys)
	if err != nil {
		return err
	}
	for _, filename := range upFiles {
		name := migrationName(filename)
		if _, err := db.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return fmt.Errorf("mark migration %s: %w", name, err)
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
	return nil
}

func printStatus(ctx context.Context, db execer, fsys fs.FS) error {
	if err := ensureSchemaMigrations(ctx, db); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(fsys)
	if err != nil {
		return err
	}
	for _, filename := range upFiles {
		name := migrationName(filename)
		done, err := isApplied(ctx, db, name)
		if err != nil {
			return err
		}
		state := "pending"
		if done {
			state = "applied"
		}
		fmt.Printf("%-8s %s\n", state, name)
	}
	return nil
}

func runScript(ctx context.Context, db execer, fsys fs.FS, filename string) error {
	sql, err := fs.ReadFile(fsys, filename)
	if err != nil {
		return fmt.Errorf("read %s: %w", filename, err)
	}
	if _, err := db.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filename, err)
	}
	slog.Debug("script applied", "file", filename)
	return nil
}
