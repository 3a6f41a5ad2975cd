package db

import (
	"context"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/udisondev/buttermap/internal/config"
	"github.com/udisondev/buttermap/internal/db/migrations"
)

// RunMigrations applies the embedded goose migrations.
func RunMigrations(ctx context.Context, d *DB) error {
	dialect := "postgres"
	if d.dialect == config.DriverSQLite {
		dialect = "sqlite3"
	}

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, d.sql, "."); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	return nil
}
