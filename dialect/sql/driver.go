package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	// Register the database/sql drivers named in package dialect.
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/lib/pq"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/dialect"
)

// Open opens a database handle with the given driver and verifies that the
// catalog is reachable. Failures are reported as *pgentity.ConnectionError.
func Open(ctx context.Context, driver, source string) (*sql.DB, error) {
	if !dialect.Supported(driver) {
		return nil, fmt.Errorf("dialect/sql: unsupported driver %q (supported: %v)", driver, dialect.Drivers)
	}
	db, err := sql.Open(driver, source)
	if err != nil {
		return nil, pgentity.NewConnectionError(err)
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, pgentity.NewConnectionError(errors.Join(err, db.Close()))
	}
	return db, nil
}

// Querier wraps the standard QueryContext method. It is implemented by
// *sql.DB, *sql.Conn and *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

type (
	// NullString is an alias to sql.NullString.
	NullString = sql.NullString
	// DB is an alias to sql.DB.
	DB = sql.DB
)
