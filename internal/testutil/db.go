package testutil

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/udisondev/buttermap/internal/config"
)

// SQLiteConfig returns a store config backed by a fresh file in the test temp dir.
func SQLiteConfig(tb testing.TB) config.DatabaseConfig {
	tb.Helper()
	cfg := config.Default().Database
	cfg.Driver = config.DriverSQLite
	cfg.Path = filepath.Join(tb.TempDir(), "buttermap.db")
	return cfg
}

// PostgresConfig запускает PostgreSQL testcontainer и возвращает конфиг подключения.
// Использует модуль postgres с BasicWaitStrategies (log occurrence(2) + port check).
// Пропускается в режиме -short.
func PostgresConfig(tb testing.TB) config.DatabaseConfig {
	tb.Helper()
	if testing.Short() {
		tb.Skip("skipping postgres container in short mode")
	}
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		tb.Fatalf("starting postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("terminating postgres container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		tb.Fatalf("getting container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		tb.Fatalf("getting container port: %v", err)
	}
	portNum, err := strconv.Atoi(port.Port())
	if err != nil {
		tb.Fatalf("parsing container port %q: %v", port.Port(), err)
	}

	return config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		Host:     host,
		Port:     portNum,
		User:     "test",
		Password: "test",
		DBName:   "testdb",
		SSLMode:  "disable",
	}
}
