package sql

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/load"
)

// CatalogQuery lists the columns of one schema. Array columns report their
// element type, and primary-key membership is resolved from pg_index.
const CatalogQuery = `SELECT
    c.table_schema,
    c.table_name,
    c.column_name,
    c.column_default,
    c.is_nullable = 'YES' AS is_nullable,
    c.column_name IN (
        SELECT pg_attribute.attname
        FROM pg_index, pg_class, pg_attribute, pg_namespace
        WHERE pg_class.oid = (quote_ident(c.table_schema) || '.' || quote_ident(c.table_name))::regclass
          AND indrelid = pg_class.oid
          AND nspname = c.table_schema
          AND pg_class.relnamespace = pg_namespace.oid
          AND pg_attribute.attrelid = pg_class.oid
          AND pg_attribute.attnum = any(pg_index.indkey)
          AND indisprimary
    ) AS is_pk,
    CASE WHEN c.data_type = 'ARRAY' THEN e.data_type ELSE c.data_type END AS data_type,
    c.data_type = 'ARRAY' AS is_array
FROM information_schema.columns c
LEFT JOIN information_schema.element_types e
    ON ((c.table_catalog, c.table_schema, c.table_name, 'TABLE', c.dtd_identifier)
      = (e.object_catalog, e.object_schema, e.object_name, e.object_type, e.collection_type_identifier))
WHERE c.table_schema = $1 AND c.data_type != 'USER-DEFINED'
ORDER BY c.table_name, c.ordinal_position`

// SlowQueryHook is a function called when the catalog query exceeds the
// slow threshold.
type SlowQueryHook func(ctx context.Context, query string, duration time.Duration)

// CatalogOption configures a Catalog.
type CatalogOption func(*Catalog)

// WithSlowQueryHook sets the threshold and the callback for slow catalog queries.
func WithSlowQueryHook(threshold time.Duration, hook SlowQueryHook) CatalogOption {
	return func(c *Catalog) {
		c.slowThreshold = threshold
		c.slowHook = hook
	}
}

// WithSlowQueryLog logs catalog queries slower than threshold to the default logger.
func WithSlowQueryLog(threshold time.Duration) CatalogOption {
	return WithSlowQueryHook(threshold, func(_ context.Context, _ string, duration time.Duration) {
		slog.Warn("slow catalog query", "duration", duration)
	})
}

// Catalog reads column rows from information_schema. It implements load.RowSource.
type Catalog struct {
	q             Querier
	slowThreshold time.Duration
	slowHook      SlowQueryHook
}

// NewCatalog returns a Catalog that runs its query on q.
func NewCatalog(q Querier, opts ...CatalogOption) *Catalog {
	c := &Catalog{q: q}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Rows implements load.RowSource.
func (c *Catalog) Rows(ctx context.Context, schemaName string) ([]load.Row, error) {
	start := time.Now()
	rows, err := c.q.QueryContext(ctx, CatalogQuery, schemaName)
	if err != nil {
		return nil, pgentity.NewConnectionError(fmt.Errorf("dialect/sql: query catalog: %w", err))
	}
	defer rows.Close()
	var out []load.Row
	for rows.Next() {
		var (
			r   load.Row
			def NullString
		)
		if err := rows.Scan(&r.Schema, &r.Table, &r.Column, &def, &r.Nullable, &r.PrimaryKey, &r.DataType, &r.Array); err != nil {
			return nil, pgentity.NewConnectionError(fmt.Errorf("dialect/sql: scan catalog row: %w", err))
		}
		if def.Valid {
			r.Default = &def.String
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, pgentity.NewConnectionError(fmt.Errorf("dialect/sql: read catalog rows: %w", err))
	}
	if d := time.Since(start); c.slowHook != nil && d > c.slowThreshold {
		c.slowHook(ctx, CatalogQuery, d)
	}
	return out, nil
}

var _ load.RowSource = (*Catalog)(nil)
