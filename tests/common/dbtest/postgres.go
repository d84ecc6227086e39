//go:build integration || e2e

package dbtest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"doctor-booking/internal/infra/db"
	"doctor-booking/internal/pkg/config"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testUser     = "test"
	testPassword = "testpass"
)

var (
	postgresContainerOnce sync.Once
	postgresContainer     *tcpostgres.PostgresContainer
	postgresContainerErr  error
)

// startPostgresOnce shares one container per test process. The testcontainers
// reaper removes it when the process exits.
func startPostgresOnce(t *testing.T) *tcpostgres.PostgresContainer {
	t.Helper()

	postgresContainerOnce.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)
		defer cancel()

		postgresContainer, postgresContainerErr = tcpostgres.Run(ctx,
			"postgres:17",
			tcpostgres.WithDatabase("postgres"),
			tcpostgres.WithUsername(testUser),
			tcpostgres.WithPassword(testPassword),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(60*time.Second),
			),
		)
	})
	require.NoError(t, postgresContainerErr, "failed to start postgres container")
	return postgresContainer
}

// NewDatabase creates a fresh migrated database on the shared container and
// returns a pool connected to it.
func NewDatabase(t *testing.T) (*pgxpool.Pool, config.DBConfig) {
	t.Helper()

	container := startPostgresOnce(t)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "5432/tcp")
	require.NoError(t, err)

	dbName := "testdb_" + strings.ReplaceAll(uuid.New().String(), "-", "")
	adminCfg := config.DBConfig{
		Host:     host,
		Port:     port.Port(),
		User:     testUser,
		Password: testPassword,
		DBName:   "postgres",
		SSLMode:  "disable",
		TimeZone: "UTC",
		MaxConns: 2,
	}

	adminPool, closeAdmin, err := db.Connect(ctx, adminCfg)
	require.NoError(t, err, "failed to connect as admin")
	defer closeAdmin()

	_, err = adminPool.Exec(ctx, "CREATE DATABASE "+dbName)
	require.NoError(t, err, "failed to create test database")

	dbCfg := adminCfg
	dbCfg.DBName = dbName
	dbCfg.MaxConns = 10

	pool, closePool, err := db.Connect(ctx, dbCfg)
	require.NoError(t, err, "failed to connect to test database")
	t.Cleanup(func() {
		closePool()
		dropCtx, dropCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer dropCancel()
		dropPool, closeDrop, err := db.Connect(dropCtx, adminCfg)
		if err != nil {
			slog.Warn("failed to connect for test database cleanup", "database", dbName, "error", err.Error())
			return
		}
		defer closeDrop()
		if _, err := dropPool.Exec(dropCtx, "DROP DATABASE IF EXISTS "+dbName+" WITH (FORCE)"); err != nil {
			slog.Warn("failed to drop test database", "database", dbName, "error", err.Error())
		}
	})

	require.NoError(t, ApplyMigrations(ctx, pool), "failed to apply migrations")
	return pool, dbCfg
}

// ApplyMigrations runs every migration file in order. The path is resolved
// from the package directory go test runs in.
func ApplyMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	dir, err := findMigrationsDir()
	if err != nil {
		return err
	}
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return err
	}
	for _, file := range files {
		sqlContent, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read migration file %s: %w", file, err)
		}
		if _, err := pool.Exec(ctx, string(sqlContent)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", file, err)
		}
	}
	return nil
}

func findMigrationsDir() (string, error) {
	candidates := []string{
		"migrations",
		filepath.Join("..", "migrations"),
		filepath.Join("..", "..", "migrations"),
		filepath.Join("..", "..", "..", "migrations"),
		filepath.Join("..", "..", "..", "..", "migrations"),
	}
	for _, cand := range candidates {
		if info, err := os.Stat(cand); err == nil && info.IsDir() {
			return cand, nil
		}
	}
	return "", fmt.Errorf("migrations directory not found")
}
