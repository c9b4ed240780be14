package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/gobank/internal/infrastructure/postgres"
)

// TestDB provides isolated test database connections.
type TestDB struct {
	Pool *pgxpool.Pool
	t    *testing.T
}

// NewTestDB creates a migrated test database connection, skipping the test
// when DATABASE_URL is not set.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set, skipping database integration test")
	}

	migrationsPath := "internal/infrastructure/postgres/migrations"
	if _, err := os.Stat(migrationsPath); os.IsNotExist(err) {
		// Relative from tests/integration
		migrationsPath = "../../internal/infrastructure/postgres/migrations"
	}

	if err := postgres.RunMigrations(dbURL, migrationsPath); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("failed to ping test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		t:    t,
	}
}

// Cleanup closes the database connection.
func (db *TestDB) Cleanup() {
	db.Pool.Close()
}

// TruncateAll removes all data from tables.
func (db *TestDB) TruncateAll(ctx context.Context) {
	db.t.Helper()

	if _, err := db.Pool.Exec(ctx, "TRUNCATE TABLE transfer_log"); err != nil {
		db.t.Fatalf("failed to truncate tables: %v", err)
	}
}
