package db

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Driver names registered by the imported drivers.
const (
	DriverCGO  = "sqlite3" // github.com/mattn/go-sqlite3
	DriverPure = "sqlite"  // modernc.org/sqlite
)

type SQLite struct {
	driver string
	dsn    string
	conn   *sql.DB
}

func NewSQLite(driver, dsn string) *SQLite {
	if driver == "" {
		driver = DriverCGO
	}
	return &SQLite{
		driver: driver,
		dsn:    dsn,
	}
}

// InitDB opens the connection and creates the three record tables.
// Row creation time is kept in created_at as unix nanoseconds.
func (s *SQLite) InitDB(ctx context.Context) error {
	conn, err := sql.Open(s.driver, s.dsn)
	if err != nil {
		return fmt.Errorf("error opening %s database: %w", s.driver, err)
	}

	// SQLite allows a single writer, and ":memory:" databases live per connection.
	conn.SetMaxOpenConns(1)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return fmt.Errorf("error connecting to database: %w", err)
	}

	if _, err := conn.ExecContext(ctx, schemaSQL); err != nil {
		conn.Close()
		return fmt.Errorf("error creating schema: %w", err)
	}

	s.conn = conn
	dbLogger.Info().Str("driver", s.driver).Str("dsn", s.dsn).Msg("Database initialized")
	return nil
}

func (s *SQLite) Get() *sql.DB {
	return s.conn
}

func (s *SQLite) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

func (s *SQLite) Query(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	dbLogger.Debug().Str("query", query).Msg("Query")
	return s.conn.QueryContext(ctx, query, args...)
}

func (s *SQLite) Exec(ctx context.Context, query string, args ...any) (sql.Result, error) {
	dbLogger.Debug().Str("query", query).Msg("Exec")
	return s.conn.ExecContext(ctx, query, args...)
}
