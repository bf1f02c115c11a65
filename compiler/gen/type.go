package gen

import (
	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/schema"
)

// TypeSystem describes how a dialect spells database column types.
type TypeSystem struct {
	// Scalar maps a raw scalar database type to a target type expression.
	// It reports false for types outside the dialect's allow-list.
	Scalar func(raw string) (string, bool)
	// Array wraps a scalar expression in the dialect's array construct.
	Array func(elem string) string
	// Fallback replaces unmapped types. An empty Fallback makes the type
	// system strict: unmapped types fail with *pgentity.UnmappedTypeError.
	Fallback string
}

// Strict reports whether unmapped types are an error.
func (ts TypeSystem) Strict() bool {
	return ts.Fallback == ""
}

// Resolve returns the scalar and the full (array-wrapped) expression of c.
// The array construct is applied once, after the scalar lookup.
func (ts TypeSystem) Resolve(t *schema.Table, c *schema.Column) (scalar, full string, err error) {
	scalar, ok := ts.Scalar(c.Type)
	if !ok {
		if ts.Strict() {
			return "", "", pgentity.NewUnmappedTypeError(t.Name, c.Name, c.Type)
		}
		scalar = ts.Fallback
	}
	full = scalar
	if c.Array && ts.Array != nil {
		full = ts.Array(scalar)
	}
	return scalar, full, nil
}

// Field is the rendering view of one column.
type Field struct {
	Name       string // column name.
	DBType     string // raw database type.
	Scalar     string // mapped scalar expression.
	Type       string // mapped expression, array-wrapped if Array.
	Array      bool
	PrimaryKey bool
	Nullable   bool
	Default    string
	HasDefault bool
}

// NewField resolves the target type of c.
func NewField(t *schema.Table, c *schema.Column, ts TypeSystem) (*Field, error) {
	scalar, full, err := ts.Resolve(t, c)
	if err != nil {
		return nil, err
	}
	return &Field{
		Name:       c.Name,
		DBType:     c.Type,
		Scalar:     scalar,
		Type:       full,
		Array:      c.Array,
		PrimaryKey: c.PrimaryKey,
		Nullable:   c.Nullable,
		Default:    c.Default,
		HasDefault: c.HasDefault,
	}, nil
}

// Entity is the rendering context of one table.
type Entity struct {
	TableName  string
	EntityName string
	Schema     string
	// Columns holds the non-key columns when primary keys are split out,
	// or every column otherwise.
	Columns []*Field
	// PKColumns holds the primary-key columns when split out.
	PKColumns []*Field
}

// Fields returns every field of the entity, primary keys first when split.
func (e *Entity) Fields() []*Field {
	fields := make([]*Field, 0, len(e.PKColumns)+len(e.Columns))
	fields = append(fields, e.PKColumns...)
	return append(fields, e.Columns...)
}

// NewEntity builds the rendering context of t. With splitPK the primary-key
// columns go to PKColumns and the rest to Columns; otherwise Columns keeps
// every column in catalog order.
func NewEntity(t *schema.Table, ts TypeSystem, splitPK bool) (*Entity, error) {
	e := &Entity{
		TableName:  t.Name,
		EntityName: ToCamelCase(t.Name),
		Schema:     t.Schema,
	}
	for _, c := range t.Columns {
		f, err := NewField(t, c, ts)
		if err != nil {
			return nil, err
		}
		if splitPK && f.PrimaryKey {
			e.PKColumns = append(e.PKColumns, f)
		} else {
			e.Columns = append(e.Columns, f)
		}
	}
	return e, nil
}
