// Package testutil provides helpers for tests that need a real MySQL
// database. Tests are skipped (not failed) when the test database is
// unreachable so the pure-Go parts of the suite stay runnable anywhere.
package testutil

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/milevb/movieweb/internal/database"
)

// DefaultTestDSN points at a local throwaway database. Override with
// MOVIEWEB_TEST_DSN.
const DefaultTestDSN = "root@tcp(localhost:3306)/movieweb_test?charset=utf8mb4&parseTime=true&loc=UTC"

// SetupTestDB opens the test database, drops the application tables and
// recreates them so every test starts from a clean slate.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("MOVIEWEB_TEST_DSN")
	if dsn == "" {
		dsn = DefaultTestDSN
	}

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open test database: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		t.Skipf("skipping: test database unreachable: %v", err)
	}

	// Junction first, then parents, or the FKs block the drops.
	for _, stmt := range []string{
		"DROP TABLE IF EXISTS user_movies",
		"DROP TABLE IF EXISTS movies",
		"DROP TABLE IF EXISTS users",
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			t.Fatalf("clean test database: %v", err)
		}
	}

	if err := database.CreateSchema(db); err != nil {
		db.Close()
		t.Fatalf("create schema: %v", err)
	}

	t.Cleanup(func() { db.Close() })
	return db
}
