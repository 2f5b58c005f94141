package testutil

import (
	"context"
	"os"
	"testing"

	"github.com/jmoiron/sqlx"

	"github.com/mkarlsson/webdemo/internal/config"
	"github.com/mkarlsson/webdemo/internal/db"
)

// OpenTestDB connects to the postgres instance named by TEST_DB_HOST and
// applies migrations. Tests calling it are skipped when the variable is
// unset, so the suite stays runnable without a database.
func OpenTestDB(t *testing.T) (*sqlx.DB, func()) {
	t.Helper()
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set, skipping postgres test")
	}
	conn, err := db.Open(config.DatabaseConfig{
		Host:     host,
		Port:     5432,
		User:     "webdemo",
		Password: "webdemo_pass",
		DBName:   "webdemo_test",
		SSLMode:  "disable",
	})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.Migrate(conn); err != nil {
		t.Fatalf("migrations: %v", err)
	}
	return conn, func() {
		_ = conn.Close()
	}
}

// WithRollback runs fn inside a transaction that is always rolled back, so
// database tests never leak rows into each other.
func WithRollback(t *testing.T, conn *sqlx.DB, fn func(tx *sqlx.Tx)) {
	t.Helper()
	tx, err := conn.BeginTxx(context.Background(), nil)
	if err != nil {
		t.Fatalf("begin tx: %v", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()
	fn(tx)
}
