// Package sqlalchemy implements the py-sqlalchemy dialect: declarative
// SQLAlchemy models for every table, written to a single Python module.
//
// The dialect is strict. A column whose type is outside the allow-list
// stops the run with *pgentity.UnmappedTypeError.
package sqlalchemy

import (
	"embed"
	"strings"

	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/schema"
)

// Name is the dialect name.
const Name = "py-sqlalchemy"

// FileName is the informational name of the generated module.
const FileName = "models.py"

var (
	//go:embed template/*
	templateFS embed.FS
	templates  = gen.MustTemplateRenderer(templateFS, "template/*.tmpl")
)

// scalars holds the exact-match part of the allow-list.
var scalars = map[string]string{
	"boolean":          "sa.Boolean",
	"integer":          "sa.Integer",
	"smallint":         "sa.SmallInteger",
	"double precision": "sa.Float",
	"single precision": "sa.Float",
	"real":             "sa.Float",
	"bigint":           "sa.BigInteger",
	"text":             "sa.Text",
	"uuid":             "pg.UUID",
	"jsonb":            "pg.JSONB",
	"json":             "sa.JSON",
	"interval":         "pg.INTERVAL",
	"date":             "sa.Date",
	"tstzrange":        "pg.TSTZRANGE",
	"bytea":            "sa.LargeBinary",
	"inet":             "pg.INET",
	"int4range":        "pg.INT4RANGE",
	"numeric":          "sa.Numeric",
	"character":        "sa.CHAR",
	"box":              "_PgBox",
	"polygon":          "_PgPolygon",
}

// MapScalar maps a scalar PostgreSQL type to its SQLAlchemy column type.
// Timestamp ranges are matched before plain timestamps.
func MapScalar(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "character varying"):
		return "sa.String", true
	case strings.HasPrefix(raw, "timestamp") && strings.HasSuffix(raw, "range"):
		return "pg.TSTZRANGE", true
	case strings.HasPrefix(raw, "timestamp"):
		return "sa.DateTime(True)", true
	}
	t, ok := scalars[raw]
	return t, ok
}

// TypeSystem is the strict type system of the dialect.
var TypeSystem = gen.TypeSystem{
	Scalar: MapScalar,
	Array: func(elem string) string {
		return "sa.ARRAY(" + elem + ")"
	},
}

// Dialect generates SQLAlchemy models.
type Dialect struct {
	r gen.Renderer
}

// New returns the dialect using the embedded templates.
func New() *Dialect {
	return &Dialect{r: templates}
}

// NewWithRenderer returns the dialect rendering through r. The renderer
// must provide the "header.tmpl" and "entity.tmpl" templates.
func NewWithRenderer(r gen.Renderer) *Dialect {
	return &Dialect{r: r}
}

// Name implements gen.Dialect.
func (*Dialect) Name() string { return Name }

// Layout implements gen.Dialect.
func (*Dialect) Layout() gen.Layout { return gen.SingleFile }

// Generate implements gen.Dialect. The module starts with the shared header
// followed by one class per table, in model order. Primary-key columns are
// rendered separately from the other columns.
func (d *Dialect) Generate(m *schema.Model) ([]*gen.Artifact, error) {
	header, err := d.r.Render("header.tmpl", m)
	if err != nil {
		return nil, err
	}
	blocks := make([][]byte, 0, len(m.Tables))
	for _, t := range m.Tables {
		e, err := gen.NewEntity(t, TypeSystem, true)
		if err != nil {
			return nil, err
		}
		b, err := d.r.Render("entity.tmpl", e)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return []*gen.Artifact{{Name: FileName, Content: gen.Combine(header, blocks...)}}, nil
}
