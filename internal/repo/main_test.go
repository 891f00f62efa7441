package repo_test

import (
	"os"
	"testing"

	"github.com/pkordes/route66/testutil"
)

// TestMain applies all pending migrations, including the Route 66 seed, once
// for the whole package. Without TEST_DATABASE_URL every test skips itself.
func TestMain(m *testing.M) {
	if dsn := os.Getenv("TEST_DATABASE_URL"); dsn != "" {
		testutil.MustMigrate(dsn)
	}
	os.Exit(m.Run())
}
