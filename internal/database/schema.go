package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
)

//go:embed migrations
var migrationsFS embed.FS

// CreateAll applies every pending schema migration. Running it against an
// up-to-date schema is a no-op.
func CreateAll(ctx context.Context, db *sqlx.DB) error {
	m, release, err := newMigrator(ctx, db)
	if err != nil {
		return fmt.Errorf("create all: %w", err)
	}
	defer release()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("create all: %w", err)
	}
	return nil
}

// DropAll reverts every applied schema migration, dropping all tables.
func DropAll(ctx context.Context, db *sqlx.DB) error {
	m, release, err := newMigrator(ctx, db)
	if err != nil {
		return fmt.Errorf("drop all: %w", err)
	}
	defer release()

	if err := m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("drop all: %w", err)
	}
	return nil
}

// newMigrator builds a migrator bound to db. The returned release func must be
// called instead of m.Close.
func newMigrator(ctx context.Context, db *sqlx.DB) (*migrate.Migrate, func(), error) {
	if db == nil {
		return nil, nil, fmt.Errorf("database connection is required")
	}

	dir := "migrations/sqlite"
	if db.DriverName() == DriverPostgres {
		dir = "migrations/postgres"
	}
	src, err := iofs.New(migrationsFS, dir)
	if err != nil {
		return nil, nil, fmt.Errorf("load migrations: %w", err)
	}

	if db.DriverName() == DriverPostgres {
		conn, err := db.Conn(ctx)
		if err != nil {
			_ = src.Close()
			return nil, nil, fmt.Errorf("acquire migration connection: %w", err)
		}
		drv, err := postgres.WithConnection(ctx, conn, &postgres.Config{})
		if err != nil {
			_ = conn.Close()
			_ = src.Close()
			return nil, nil, fmt.Errorf("init postgres migrations: %w", err)
		}
		m, err := migrate.NewWithInstance("iofs", src, DriverPostgres, drv)
		if err != nil {
			_ = conn.Close()
			_ = src.Close()
			return nil, nil, err
		}
		m.Log = migrateLogger{}
		// The driver only owns conn here, so Close hands it back to the pool.
		return m, func() { _, _ = m.Close() }, nil
	}

	drv, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		_ = src.Close()
		return nil, nil, fmt.Errorf("init sqlite migrations: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", src, DriverSQLite3, drv)
	if err != nil {
		_ = src.Close()
		return nil, nil, err
	}
	m.Log = migrateLogger{}
	// sqlite3's Close closes the shared *sql.DB, so only the source is released.
	return m, func() { _ = src.Close() }, nil
}

// migrateLogger routes golang-migrate progress into slog at debug level.
type migrateLogger struct{}

func (migrateLogger) Printf(format string, v ...any) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "migrate")
}

func (migrateLogger) Verbose() bool { return false }
