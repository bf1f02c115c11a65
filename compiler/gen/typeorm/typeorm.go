// Package typeorm implements the ts-typeorm dialect: one TypeORM entity
// class per table, each in its own TypeScript file named after the table.
//
// The dialect is permissive. Types outside the allow-list are emitted as
// "any" and generation continues.
package typeorm

import (
	"embed"
	"strings"

	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/schema"
)

// Name is the dialect name.
const Name = "ts-typeorm"

// Fallback is the type emitted for unmapped columns.
const Fallback = "any"

var (
	//go:embed template/*
	templateFS embed.FS
	templates  = gen.MustTemplateRenderer(templateFS, "template/*.tmpl")
)

var scalars = map[string]string{
	"boolean":          "boolean",
	"integer":          "number",
	"smallint":         "number",
	"double precision": "number",
	"real":             "number",
	"bigint":           "BigInt",
	"numeric":          "string",
	"character":        "string",
	"text":             "string",
	"uuid":             "string",
	"date":             "Date",
	"jsonb":            "object",
	"json":             "object",
	"bytea":            "Buffer",
}

// MapScalar maps a scalar PostgreSQL type to its TypeScript type.
// Every range type is a string; ranges are matched before timestamps.
func MapScalar(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "character varying"):
		return "string", true
	case strings.HasSuffix(raw, "range"):
		return "string", true
	case strings.HasPrefix(raw, "timestamp"):
		return "Date", true
	}
	t, ok := scalars[raw]
	return t, ok
}

// TypeSystem is the permissive type system of the dialect.
var TypeSystem = gen.TypeSystem{
	Scalar: MapScalar,
	Array: func(elem string) string {
		return elem + "[]"
	},
	Fallback: Fallback,
}

// Dialect generates TypeORM entities.
type Dialect struct {
	r gen.Renderer
}

// New returns the dialect using the embedded templates.
func New() *Dialect {
	return &Dialect{r: templates}
}

// NewWithRenderer returns the dialect rendering through r.
func NewWithRenderer(r gen.Renderer) *Dialect {
	return &Dialect{r: r}
}

// Name implements gen.Dialect.
func (*Dialect) Name() string { return Name }

// Layout implements gen.Dialect.
func (*Dialect) Layout() gen.Layout { return gen.PerTable }

// Generate implements gen.Dialect. Each artifact holds the header followed
// by exactly one entity, all columns listed in catalog order.
func (d *Dialect) Generate(m *schema.Model) ([]*gen.Artifact, error) {
	header, err := d.r.Render("header.tmpl", m)
	if err != nil {
		return nil, err
	}
	artifacts := make([]*gen.Artifact, 0, len(m.Tables))
	for _, t := range m.Tables {
		e, err := gen.NewEntity(t, TypeSystem, false)
		if err != nil {
			return nil, err
		}
		b, err := d.r.Render("entity.tmpl", e)
		if err != nil {
			return nil, err
		}
		artifacts = append(artifacts, &gen.Artifact{
			Name:    FileName(t),
			Content: gen.Combine(header, b),
		})
	}
	return artifacts, nil
}

// FileName returns the file name of the entity of t.
func FileName(t *schema.Table) string {
	return t.Name + ".ts"
}
