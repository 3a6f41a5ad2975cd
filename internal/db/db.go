package db

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"github.com/udisondev/buttermap/internal/config"
)

// sql.Open driver names registered by the imported drivers.
const (
	pgxDriverName    = "pgx"
	sqliteDriverName = "sqlite"
)

// DB wraps a database/sql handle to the map store.
type DB struct {
	sql     *sql.DB
	dialect string
}

// Open connects to the store described by cfg and pings it.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*DB, error) {
	var driverName string
	switch cfg.Driver {
	case config.DriverPostgres:
		driverName = pgxDriverName
	case config.DriverSQLite:
		driverName = sqliteDriverName
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	sqlDB, err := sql.Open(driverName, cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if cfg.Driver == config.DriverSQLite {
		// один writer, иначе SQLITE_BUSY
		sqlDB.SetMaxOpenConns(1)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &DB{sql: sqlDB, dialect: cfg.Driver}, nil
}

// Close closes the database handle.
func (d *DB) Close() error {
	return d.sql.Close()
}

// SQL returns the underlying handle (for goose migrations).
func (d *DB) SQL() *sql.DB {
	return d.sql
}

// Dialect returns the configured driver, config.DriverPostgres or config.DriverSQLite.
func (d *DB) Dialect() string {
	return d.dialect
}

// rebind rewrites ? placeholders to $n for PostgreSQL.
func (d *DB) rebind(query string) string {
	if d.dialect != config.DriverPostgres {
		return query
	}
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for i := 0; i < len(query); i++ {
		if query[i] == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteByte(query[i])
	}
	return b.String()
}
