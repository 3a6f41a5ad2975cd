package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/udisondev/buttermap/internal/config"
)

// openStore открывает store, применяет миграции и закрывает его после теста.
func openStore(tb testing.TB, cfg config.DatabaseConfig) *DB {
	tb.Helper()
	ctx := context.Background()

	d, err := Open(ctx, cfg)
	require.NoError(tb, err)
	tb.Cleanup(func() { _ = d.Close() })

	require.NoError(tb, RunMigrations(ctx, d))
	return d
}
