// Package schema reads catalog rows through the Atlas PostgreSQL inspector,
// as an alternative to the information_schema query of package dialect/sql.
package schema

import (
	"context"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/load"
)

// Inspector implements load.RowSource on top of an Atlas driver.
type Inspector struct {
	drv migrate.Driver
}

// NewInspector opens an Atlas PostgreSQL driver on db.
func NewInspector(db schema.ExecQuerier) (*Inspector, error) {
	drv, err := postgres.Open(db)
	if err != nil {
		return nil, pgentity.NewConnectionError(fmt.Errorf("dialect/sql/schema: open atlas driver: %w", err))
	}
	return &Inspector{drv: drv}, nil
}

// Rows implements load.RowSource.
func (i *Inspector) Rows(ctx context.Context, schemaName string) ([]load.Row, error) {
	s, err := i.drv.InspectSchema(ctx, schemaName, &schema.InspectOptions{
		Mode: schema.InspectTables,
	})
	if err != nil {
		return nil, pgentity.NewConnectionError(fmt.Errorf("dialect/sql/schema: inspect %q: %w", schemaName, err))
	}
	return Rows(s), nil
}

// Rows flattens an inspected schema into catalog rows, in table and column
// order. Columns of user-defined types are reported with load.UserDefined.
func Rows(s *schema.Schema) []load.Row {
	var rows []load.Row
	for _, t := range s.Tables {
		pk := primaryKey(t)
		for _, c := range t.Columns {
			typ, array := columnType(c)
			r := load.Row{
				Schema:     s.Name,
				Table:      t.Name,
				Column:     c.Name,
				DataType:   typ,
				Array:      array,
				PrimaryKey: pk[c.Name],
				Nullable:   c.Type != nil && c.Type.Null,
			}
			if d, ok := defaultExpr(c.Default); ok {
				r.Default = &d
			}
			rows = append(rows, r)
		}
	}
	return rows
}

func primaryKey(t *schema.Table) map[string]bool {
	pk := make(map[string]bool)
	if t.PrimaryKey == nil {
		return pk
	}
	for _, p := range t.PrimaryKey.Parts {
		if p.C != nil {
			pk[p.C.Name] = true
		}
	}
	return pk
}

// columnType returns the scalar data type of c and whether c is an array.
func columnType(c *schema.Column) (string, bool) {
	if c.Type == nil {
		return "", false
	}
	switch t := c.Type.Type.(type) {
	case *postgres.ArrayType:
		return formatType(t.Type, strings.TrimSuffix(t.T, "[]")), true
	case *postgres.UserDefinedType, *schema.EnumType:
		return load.UserDefined, false
	}
	switch raw := c.Type.Raw; {
	case strings.EqualFold(raw, load.UserDefined):
		return load.UserDefined, false
	case raw != "" && !strings.EqualFold(raw, "ARRAY"):
		return raw, false
	default:
		return formatType(c.Type.Type, raw), false
	}
}

// formatType formats t without type modifiers, the way information_schema
// reports data types: numeric(10,2) => numeric, timestamp(3) with time zone
// => timestamp with time zone.
func formatType(t schema.Type, fallback string) string {
	s := fallback
	if t != nil {
		if f, err := postgres.FormatType(t); err == nil {
			s = f
		}
	}
	return stripModifiers(s)
}

func stripModifiers(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func defaultExpr(x schema.Expr) (string, bool) {
	switch x := x.(type) {
	case *schema.RawExpr:
		return x.X, true
	case *schema.Literal:
		return x.V, true
	default:
		return "", false
	}
}

var _ load.RowSource = (*Inspector)(nil)
