package database

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"           // PostgreSQL driver
	_ "github.com/mattn/go-sqlite3" // SQLite driver
	_ "modernc.org/sqlite"          // Pure Go SQLite driver
)

// Supported database/sql driver names.
const (
	DriverSQLite3  = "sqlite3"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func init() {
	// sqlx only knows the cgo driver name; the pure Go one takes ? placeholders too.
	sqlx.BindDriver(DriverSQLite, sqlx.QUESTION)
}

// DetectDriver returns driver when set, otherwise infers one from the DSN.
func DetectDriver(driver, dsn string) string {
	driver = strings.TrimSpace(driver)
	if driver != "" {
		return driver
	}
	lower := strings.ToLower(strings.TrimSpace(dsn))
	if strings.HasPrefix(lower, "postgres://") || strings.HasPrefix(lower, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite3
}

// Open opens and pings a database connection. The caller owns the returned
// handle and must Close it.
func Open(driver, dataSourceName string) (*sqlx.DB, error) {
	if strings.TrimSpace(dataSourceName) == "" {
		return nil, fmt.Errorf("data source name is required")
	}
	driver = DetectDriver(driver, dataSourceName)
	switch driver {
	case DriverSQLite3, DriverSQLite, DriverPostgres:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	db, err := sqlx.Open(driver, dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("open %s db: %w", driver, err)
	}

	// Every new connection to an in-memory SQLite database gets its own empty
	// database, so the pool must hold exactly one.
	if isMemoryDSN(dataSourceName) {
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
		db.SetConnMaxLifetime(0)
	}

	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", driver, err)
	}
	return db, nil
}

func isMemoryDSN(dsn string) bool {
	return dsn == ":memory:" ||
		strings.HasPrefix(dsn, "file::memory:") ||
		strings.Contains(dsn, "mode=memory")
}
