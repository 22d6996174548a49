package db

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Pool stays nil when DATABASE_URL is unset; callers fall back to the
// in-memory store.
var Pool *pgxpool.Pool

var (
	newPool  = pgxpool.New
	pingPool = func(ctx context.Context, pool *pgxpool.Pool) error {
		return pool.Ping(ctx)
	}
)

// InitPostgres opens and pings a pool for dsn. An empty dsn leaves Pool nil.
func InitPostgres(ctx context.Context, dsn string) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		log.Warn("DATABASE_URL not set, skipping Postgres")
		return
	}

	pool, err := newPool(ctx, dsn)
	if err != nil {
		log.Fatal("failed to create Postgres pool", "err", err)
	}
	if err := pingPool(ctx, pool); err != nil {
		log.Fatal("failed to connect to Postgres", "err", err)
	}
	Pool = pool
	log.Info("Connected to Postgres")
}

// Close releases the pool if one was opened.
func Close() {
	if Pool != nil {
		Pool.Close()
		Pool = nil
	}
}
