package testutil_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/route66/migrations"
	"github.com/pkordes/route66/testutil"
)

// TestMigrations verifies the full migration round-trip against a real
// Postgres database: up, check tables and seed data, down to zero, check the
// tables are gone, then up again.
//
// The test is skipped automatically when TEST_DATABASE_URL is not set.
func TestMigrations(t *testing.T) {
	db := testutil.NewSQLDB(t)

	provider, err := goose.NewProvider(
		goose.DialectPostgres,
		db,
		migrations.FS,
	)
	require.NoError(t, err, "create goose provider")

	ctx := context.Background()

	// --- Ensure a clean baseline before testing ---
	// Another package's TestMain may have already applied migrations against this
	// shared test DB. Reset to version 0 first so this test is self-contained and
	// order-independent, whether run alone or as part of the full suite.
	if _, err := provider.DownTo(ctx, 0); err != nil {
		t.Fatalf("TestMigrations: initial reset: %v", err)
	}

	// --- Red → Green: apply all migrations ---
	results, err := provider.Up(ctx)
	require.NoError(t, err, "goose up")
	assert.NotEmpty(t, results, "expected at least one migration to be applied")

	// Verify all expected tables exist after applying migrations.
	for _, table := range []string{"waypoints", "attractions", "trip_plans"} {
		assertTableExists(t, db, table)
	}

	// The seed migration must leave a usable Route 66 pool behind.
	var majors int
	err = db.QueryRowContext(ctx, `SELECT count(*) FROM waypoints WHERE is_major_stop`).Scan(&majors)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, majors, 10)

	// --- Roll back all migrations ---
	_, err = provider.DownTo(ctx, 0)
	require.NoError(t, err, "goose down-to 0")

	// Verify all tables have been removed after rolling back.
	for _, table := range []string{"waypoints", "attractions", "trip_plans"} {
		assertTableNotExists(t, db, table)
	}

	// Leave the schema in place for packages that run after this one.
	_, err = provider.Up(ctx)
	require.NoError(t, err, "goose up after reset")
}

// TestNewRoute66Pool checks that the helper hands back a seeded schema.
func TestNewRoute66Pool(t *testing.T) {
	pool := testutil.NewRoute66Pool(t)

	var name string
	var major bool
	err := pool.QueryRow(context.Background(),
		`SELECT name, is_major_stop FROM waypoints WHERE name = 'Chicago'`).Scan(&name, &major)

	require.NoError(t, err)
	assert.Equal(t, "Chicago", name)
	assert.True(t, major)
}

// assertTableExists fails the test if the named table does not exist in the
// public schema of the connected database.
func assertTableExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	assertTablePresence(t, db, table, true)
}

// assertTableNotExists fails the test if the named table exists in the
// public schema of the connected database.
func assertTableNotExists(t *testing.T, db *sql.DB, table string) {
	t.Helper()
	assertTablePresence(t, db, table, false)
}

func assertTablePresence(t *testing.T, db *sql.DB, table string, shouldExist bool) {
	t.Helper()

	// Use the information_schema to check table existence in a portable way.
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM information_schema.tables
			WHERE table_schema = 'public'
			AND   table_name   = $1
		)`
	var exists bool
	err := db.QueryRowContext(context.Background(), q, table).Scan(&exists)
	require.NoError(t, err, "check table existence for %q", table)

	if shouldExist {
		assert.True(t, exists, "expected table %q to exist", table)
	} else {
		assert.False(t, exists, "expected table %q to not exist", table)
	}
}
