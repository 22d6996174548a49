package main

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"asteroid-tracker/internal/logger"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

const (
	cmdUp      = "up"
	cmdDown    = "down"
	cmdVersion = "version"

	usage = "usage: migrate [up|down|version] [steps]"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var migrationFileRe = regexp.MustCompile(`^migrations/([0-9]+)_([a-z0-9_]+)\.(up|down)\.sql$`)

var (
	loadEnvFunc = godotenv.Load
	openPool    = func(ctx context.Context, dsn string) (migrationDB, func(), error) {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			return nil, nil, err
		}
		return pool, pool.Close, nil
	}
)

// migrationDB is the subset of *pgxpool.Pool the migrator needs.
type migrationDB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}

type migration struct {
	Version int64
	Name    string
	UpSQL   string
	DownSQL string
}

type command struct {
	Name  string
	Steps int
}

func main() {
	_ = loadEnvFunc()
	logger.Init(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))

	cmd, err := parseCommand(os.Args[1:])
	if err != nil {
		log.Fatal(err.Error(), "usage", usage)
	}

	dsn := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if dsn == "" {
		log.Fatal("DATABASE_URL is required")
	}

	ctx := context.Background()
	pool, closePool, err := openPool(ctx, dsn)
	if err != nil {
		log.Fatal("connect to postgres", "err", err)
	}
	defer closePool()

	if err := run(ctx, pool, cmd); err != nil {
		log.Fatal("migration failed", "command", cmd.Name, "err", err)
	}
}

func run(ctx context.Context, pool migrationDB, cmd command) error {
	if err := ensureMigrationTable(ctx, pool); err != nil {
		return fmt.Errorf("ensure schema_migrations table: %w", err)
	}
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	switch cmd.Name {
	case cmdUp:
		applied, err := applyUp(ctx, pool, migrations)
		if err != nil {
			return err
		}
		log.Info("migrations up complete", "applied", applied)
	case cmdDown:
		rolledBack, err := applyDown(ctx, pool, migrations, cmd.Steps)
		if err != nil {
			return err
		}
		log.Info("migrations down complete", "rolled_back", rolledBack)
	case cmdVersion:
		version, name, err := currentVersion(ctx, pool)
		if err != nil {
			return fmt.Errorf("read current version: %w", err)
		}
		if version == 0 {
			log.Info("no migrations applied")
			return nil
		}
		log.Info("current version", "version", version, "name", name)
	}
	return nil
}

func parseCommand(args []string) (command, error) {
	if len(args) == 0 {
		return command{}, errors.New("missing command")
	}
	cmd := command{Name: args[0], Steps: 1}
	switch cmd.Name {
	case cmdUp, cmdVersion:
	case cmdDown:
		if len(args) > 1 {
			n, err := strconv.Atoi(args[1])
			if err != nil || n <= 0 {
				return command{}, fmt.Errorf("invalid down steps: %q", args[1])
			}
			cmd.Steps = n
		}
	default:
		return command{}, fmt.Errorf("unknown command %q", args[0])
	}
	return cmd, nil
}

func ensureMigrationTable(ctx context.Context, pool migrationDB) error {
	_, err := pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version     BIGINT PRIMARY KEY,
    name        TEXT NOT NULL,
    applied_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);`)
	return err
}

// loadMigrations pairs NNNNNN_name.up.sql with its .down.sql, sorted by version.
func loadMigrations(fsys fs.FS) ([]migration, error) {
	paths, err := fs.Glob(fsys, "migrations/*.sql")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, errors.New("no migration files found")
	}

	index := make(map[int64]*migration)
	for _, p := range paths {
		matches := migrationFileRe.FindStringSubmatch(p)
		if matches == nil {
			return nil, fmt.Errorf("invalid migration filename: %s", p)
		}
		version, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse version in %s: %w", p, err)
		}
		name, direction := matches[2], matches[3]

		body, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", p, err)
		}
		sqlText := strings.TrimSpace(string(body))
		if sqlText == "" {
			return nil, fmt.Errorf("empty migration file: %s", p)
		}

		m, ok := index[version]
		if !ok {
			m = &migration{Version: version, Name: name}
			index[version] = m
		} else if m.Name != name {
			return nil, fmt.Errorf("conflicting names for version %d: %s vs %s", version, m.Name, name)
		}

		target := &m.UpSQL
		if direction == "down" {
			target = &m.DownSQL
		}
		if *target != "" {
			return nil, fmt.Errorf("duplicate %s migration for version %d", direction, version)
		}
		*target = sqlText
	}

	migrations := make([]migration, 0, len(index))
	for _, m := range index {
		if m.UpSQL == "" || m.DownSQL == "" {
			return nil, fmt.Errorf("migration version %d must include both up and down files", m.Version)
		}
		migrations = append(migrations, *m)
	}
	sort.Slice(migrations, func(i, j int) bool { return migrations[i].Version < migrations[j].Version })
	return migrations, nil
}

func loadAppliedVersions(ctx context.Context, pool migrationDB) (map[int64]struct{}, error) {
	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations`)
	if err != nil {
		return nil, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return nil, err
	}

	applied := make(map[int64]struct{}, len(versions))
	for _, v := range versions {
		applied[v] = struct{}{}
	}
	return applied, nil
}

// pending returns the migrations not yet recorded, in version order.
func pending(migrations []migration, applied map[int64]struct{}) []migration {
	out := make([]migration, 0, len(migrations))
	for _, m := range migrations {
		if _, ok := applied[m.Version]; !ok {
			out = append(out, m)
		}
	}
	return out
}

func applyUp(ctx context.Context, pool migrationDB, migrations []migration) (int, error) {
	applied, err := loadAppliedVersions(ctx, pool)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, m := range pending(migrations, applied) {
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.UpSQL); err != nil {
				return fmt.Errorf("version %d up failed: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`, m.Version, m.Name); err != nil {
				return fmt.Errorf("record version %d failed: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		log.Info("applied migration", "version", m.Version, "name", m.Name)
		count++
	}
	return count, nil
}

func applyDown(ctx context.Context, pool migrationDB, migrations []migration, steps int) (int, error) {
	if steps <= 0 {
		return 0, fmt.Errorf("steps must be > 0")
	}

	byVersion := make(map[int64]migration, len(migrations))
	for _, m := range migrations {
		byVersion[m.Version] = m
	}

	rows, err := pool.Query(ctx, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT $1`, steps)
	if err != nil {
		return 0, err
	}
	versions, err := pgx.CollectRows(rows, pgx.RowTo[int64])
	if err != nil {
		return 0, err
	}

	count := 0
	for _, version := range versions {
		m, ok := byVersion[version]
		if !ok {
			return count, fmt.Errorf("cannot find migration source for applied version %d", version)
		}
		err := pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.DownSQL); err != nil {
				return fmt.Errorf("version %d down failed: %w", m.Version, err)
			}
			if _, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, m.Version); err != nil {
				return fmt.Errorf("delete version %d failed: %w", m.Version, err)
			}
			return nil
		})
		if err != nil {
			return count, err
		}
		log.Info("rolled back migration", "version", m.Version, "name", m.Name)
		count++
	}
	return count, nil
}

func currentVersion(ctx context.Context, pool migrationDB) (int64, string, error) {
	var version int64
	var name string
	err := pool.QueryRow(ctx, `SELECT version, name FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&version, &name)
	if errors.Is(err, pgx.ErrNoRows) {
		return 0, "", nil
	}
	if err != nil {
		return 0, "", err
	}
	return version, name, nil
}
