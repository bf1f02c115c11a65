package load

import (
	"cmp"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/schema"
)

// UserDefined is the data type the catalog reports for composite, enum and
// other user-defined types. Rows carrying it are never loaded.
const UserDefined = "USER-DEFINED"

// Row is one flat catalog row describing a single column.
type Row struct {
	Schema     string  `json:"table_schema"`
	Table      string  `json:"table_name"`
	Column     string  `json:"column_name"`
	Default    *string `json:"column_default,omitempty"`
	Nullable   bool    `json:"is_nullable,omitempty"`
	PrimaryKey bool    `json:"is_pk,omitempty"`
	DataType   string  `json:"data_type"`
	Array      bool    `json:"is_array,omitempty"`
}

// RowSource returns the catalog rows of one database schema.
type RowSource interface {
	Rows(ctx context.Context, schemaName string) ([]Row, error)
}

// RowSourceFunc is an adapter to allow the use of ordinary functions as RowSource.
type RowSourceFunc func(context.Context, string) ([]Row, error)

// Rows calls f(ctx, schemaName).
func (f RowSourceFunc) Rows(ctx context.Context, schemaName string) ([]Row, error) {
	return f(ctx, schemaName)
}

// Load reads the catalog rows of the given schema from src and builds the
// schema model. Tables are sorted by name.
func Load(ctx context.Context, src RowSource, schemaName string) (*schema.Model, error) {
	rows, err := src.Rows(ctx, schemaName)
	if err != nil {
		if pgentity.IsConnectionError(err) || pgentity.IsDumpError(err) {
			return nil, err
		}
		return nil, pgentity.NewConnectionError(err)
	}
	tables := Group(schemaName, rows)
	if len(tables) == 0 {
		return nil, pgentity.NewEmptySchemaError(schemaName)
	}
	slog.Debug("catalog loaded", "schema", schemaName, "rows", len(rows), "tables", len(tables))
	return &schema.Model{Schema: schemaName, Tables: tables}, nil
}

// Group groups flat catalog rows into tables keyed by (schema, table). The
// first row of a table creates it and later rows append columns in order.
// Rows of user-defined types or of other schemas are dropped. An empty
// schemaName keeps rows of every schema.
func Group(schemaName string, rows []Row) []*schema.Table {
	var (
		tables []*schema.Table
		index  = make(map[schema.TableKey]*schema.Table)
	)
	for _, r := range rows {
		if schemaName != "" && r.Schema != schemaName {
			continue
		}
		c, ok := column(r)
		if !ok {
			continue
		}
		key := schema.TableKey{Schema: r.Schema, Name: r.Table}
		t, ok := index[key]
		if !ok {
			t = &schema.Table{Name: r.Table, Schema: r.Schema}
			index[key] = t
			tables = append(tables, t)
		}
		if _, dup := t.Column(c.Name); dup {
			slog.Warn("duplicate catalog column", "table", key.String(), "column", c.Name)
			continue
		}
		t.Columns = append(t.Columns, c)
	}
	slices.SortStableFunc(tables, func(a, b *schema.Table) int {
		return cmp.Or(cmp.Compare(a.Name, b.Name), cmp.Compare(a.Schema, b.Schema))
	})
	return tables
}

// column converts a row to a column. It reports false for rows
// that must not reach the model.
func column(r Row) (*schema.Column, bool) {
	typ, array := NormalizeType(r.DataType)
	if typ == "" || strings.EqualFold(typ, UserDefined) {
		return nil, false
	}
	c := &schema.Column{
		Name:       r.Column,
		Type:       typ,
		Array:      r.Array || array,
		PrimaryKey: r.PrimaryKey,
		Nullable:   r.Nullable,
	}
	if r.Default != nil {
		c.Default, c.HasDefault = *r.Default, true
	}
	return c, true
}

// NormalizeType strips array markers from a raw data type and reports
// whether one was present. "text[]" and "text[][]" yield ("text", true).
func NormalizeType(raw string) (string, bool) {
	typ := strings.TrimSpace(raw)
	array := false
	for strings.HasSuffix(typ, "[]") {
		typ, array = strings.TrimSpace(strings.TrimSuffix(typ, "[]")), true
	}
	return typ, array
}

// FileSource reads catalog rows from a JSON document holding an array of
// rows, as produced by running the catalog query with json_agg.
type FileSource struct {
	Path string
}

// Rows implements RowSource. A file that cannot be opened is reported as
// an unreachable catalog, one that cannot be decoded as a *pgentity.DumpError.
func (s FileSource) Rows(_ context.Context, _ string) ([]Row, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	rows, err := ReadRows(f)
	if err != nil {
		return nil, pgentity.NewDumpError(s.Path, err)
	}
	return rows, nil
}

// ReadRows decodes a JSON array of rows.
func ReadRows(r io.Reader) ([]Row, error) {
	var rows []Row
	if err := json.NewDecoder(r).Decode(&rows); err != nil {
		return nil, fmt.Errorf("decode catalog rows: %w", err)
	}
	return rows, nil
}
