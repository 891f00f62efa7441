// Package testutil holds the database helpers shared by the integration tests.
// Every helper skips the calling test when TEST_DATABASE_URL is unset, so the
// unit suite runs without Postgres.
package testutil

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/pkordes/route66/migrations"
)

const dsnEnv = "TEST_DATABASE_URL"

// NewPool returns a pool on the test database. It is closed when the test
// and its subtests finish.
func NewPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool, err := pgxpool.New(context.Background(), requireDSN(t))
	if err != nil {
		t.Fatalf("testutil.NewPool: open pool: %v", err)
	}
	if err := pool.Ping(context.Background()); err != nil {
		pool.Close()
		t.Fatalf("testutil.NewPool: ping: %v", err)
	}

	t.Cleanup(pool.Close)
	return pool
}

// NewRoute66Pool is NewPool on a schema migrated to the latest version, which
// includes the seeded Route 66 waypoints and attractions.
func NewRoute66Pool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	pool := NewPool(t)
	if err := migrateUp(context.Background(), pool); err != nil {
		t.Fatalf("testutil.NewRoute66Pool: %v", err)
	}
	return pool
}

// NewSQLDB returns the test database through database/sql, for driving goose
// directly. It is closed when the test finishes.
func NewSQLDB(t *testing.T) *sql.DB {
	t.Helper()

	pool := NewPool(t)
	db := stdlib.OpenDBFromPool(pool)
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("testutil.NewSQLDB: ping: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// MustMigrate applies every pending migration to dsn and panics on failure.
// It is meant for TestMain, where no *testing.T is available.
func MustMigrate(dsn string) {
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		panic("testutil.MustMigrate: open pool: " + err.Error())
	}
	defer pool.Close()

	if err := migrateUp(ctx, pool); err != nil {
		panic("testutil.MustMigrate: " + err.Error())
	}
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool) error {
	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
	if err != nil {
		return fmt.Errorf("create goose provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func requireDSN(t *testing.T) string {
	t.Helper()
	dsn := os.Getenv(dsnEnv)
	if dsn == "" {
		t.Skip(dsnEnv + " not set; skipping integration test")
	}
	return dsn
}
