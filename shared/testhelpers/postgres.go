//go:build integration

// Package testhelpers starts disposable infrastructure for integration tests.
package testhelpers

import (
	"careops/helper"
	"careops/infras/postgres"
	"context"
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "careops"
	postgresPassword = "careops"
	postgresDB       = "careops_test"
	startupTimeout   = 60 * time.Second
)

var (
	sharedDB     *postgres.Connection
	sharedDBOnce sync.Once
	sharedDBErr  error
)

// GetTestDB returns a migrated Postgres shared by every test in the package.
func GetTestDB(t *testing.T) *postgres.Connection {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedDBOnce.Do(func() {
		sharedDB, sharedDBErr = setupTestDB()
	})

	if sharedDBErr != nil {
		t.Fatalf("Failed to setup test database: %v", sharedDBErr)
	}

	return sharedDB
}

func setupTestDB() (*postgres.Connection, error) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_DB":       postgresDB,
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
		},
		// the server restarts once after running init scripts
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(startupTimeout),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}

	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := postgres.DSN(postgresUser, postgresPassword, host, port.Port(), postgresDB, "disable")

	if err = helper.RunnerWithDSN("file://"+migrationsDir(), dsn, helper.ActionUp); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	return postgres.NewSingle(db), nil
}

// Truncate empties the given tables so each test starts from known rows.
func Truncate(t *testing.T, db *postgres.Connection, tables ...string) {
	t.Helper()

	for _, table := range tables {
		if _, err := db.Write.Exec("TRUNCATE TABLE " + table + " CASCADE"); err != nil {
			t.Fatalf("Failed to truncate %s: %v", table, err)
		}
	}
}

func migrationsDir() string {
	_, file, _, _ := runtime.Caller(0)

	return filepath.Join(filepath.Dir(file), "..", "..", "migrations", "postgres")
}
