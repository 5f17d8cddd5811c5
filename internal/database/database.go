package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/extra/bundebug"
)

// Config holds connection settings for the persistence layer.
type Config struct {
	// Driver is "postgres" or "sqlite".
	Driver string
	// DSN is the driver-specific connection string.
	DSN string
	// QueryLog enables SQL statement logging via bundebug.
	QueryLog bool

	MaxOpenConns int
	MaxIdleConns int
}

// Open connects to the configured database and wraps it in a Bun DB with the
// matching dialect. Postgres is the production target; sqlite (including
// ":memory:") is used for local development and tests.
func Open(cfg Config, logger *slog.Logger) (*bun.DB, error) {
	var db *bun.DB
	switch cfg.Driver {
	case "postgres":
		sqldb, err := sql.Open("postgres", cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres: %w", err)
		}
		if cfg.MaxOpenConns > 0 {
			sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
		}
		if cfg.MaxIdleConns > 0 {
			sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
		}
		db = bun.NewDB(sqldb, pgdialect.New())
	case "sqlite":
		sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DSN)
		if err != nil {
			return nil, fmt.Errorf("open sqlite: %w", err)
		}
		// An in-memory sqlite database exists per connection; keep one.
		if strings.Contains(cfg.DSN, ":memory:") {
			sqldb.SetMaxOpenConns(1)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	default:
		return nil, fmt.Errorf("unsupported database driver: %q", cfg.Driver)
	}

	if cfg.QueryLog {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}
	if logger != nil {
		logger.Info("database connected", "driver", cfg.Driver)
	}
	return db, nil
}
