// Package gostruct implements the go-struct dialect: one plain Go struct per
// table with db and json tags, written to a single Go source file.
//
// The dialect is strict. Unmapped types fail with *pgentity.UnmappedTypeError.
package gostruct

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/dave/jennifer/jen"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/schema"
)

// Name is the dialect name.
const Name = "go-struct"

// FileName is the informational name of the generated file.
const FileName = "entity.go"

const header = "Code generated by pgentity. DO NOT EDIT."

var scalars = map[string]string{
	"boolean":          "bool",
	"smallint":         "int16",
	"integer":          "int32",
	"bigint":           "int64",
	"real":             "float32",
	"double precision": "float64",
	"numeric":          "string",
	"character":        "string",
	"text":             "string",
	"uuid":             "string",
	"inet":             "string",
	"tstzrange":        "string",
	"int4range":        "string",
	"date":             "time.Time",
	"interval":         "time.Duration",
	"json":             "json.RawMessage",
	"jsonb":            "json.RawMessage",
	"bytea":            "[]byte",
}

// MapScalar maps a scalar PostgreSQL type to a Go type expression.
func MapScalar(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "character varying"):
		return "string", true
	case strings.HasPrefix(raw, "timestamp") && strings.HasSuffix(raw, "range"):
		return "string", true
	case strings.HasPrefix(raw, "timestamp"):
		return "time.Time", true
	}
	t, ok := scalars[raw]
	return t, ok
}

// TypeSystem is the strict type system of the dialect.
var TypeSystem = gen.TypeSystem{
	Scalar: MapScalar,
	Array: func(elem string) string {
		return "[]" + elem
	},
}

// Dialect generates Go structs.
type Dialect struct {
	pkg string
}

// New returns the dialect emitting package pkg.
func New(pkg string) *Dialect {
	if pkg == "" {
		pkg = gen.DefaultPackage
	}
	return &Dialect{pkg: pkg}
}

// Name implements gen.Dialect.
func (*Dialect) Name() string { return Name }

// Layout implements gen.Dialect.
func (*Dialect) Layout() gen.Layout { return gen.SingleFile }

// Generate implements gen.Dialect. Struct names are the singular
// camel-cased table names; a name already taken by an earlier table keeps
// its plural form, and then gets a numeric suffix.
func (d *Dialect) Generate(m *schema.Model) ([]*gen.Artifact, error) {
	f := jen.NewFile(d.pkg)
	f.HeaderComment(header)
	names := make(map[string]bool, len(m.Tables))
	for _, t := range m.Tables {
		e, err := gen.NewEntity(t, TypeSystem, false)
		if err != nil {
			return nil, err
		}
		name := structName(names, e.EntityName)
		names[name] = true
		entity(f, name, e)
	}
	var buf bytes.Buffer
	if err := f.Render(&buf); err != nil {
		return nil, pgentity.NewRenderError(Name, "", err)
	}
	return []*gen.Artifact{{Name: FileName, Content: buf.Bytes()}}, nil
}

// structName returns the first name of the entity not in taken:
// Category, Categories, Categories2, Categories3...
func structName(taken map[string]bool, entityName string) string {
	name := gen.Singular(entityName)
	if !taken[name] {
		return name
	}
	name = entityName
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%s%d", entityName, i)
	}
	return name
}

// entity declares the struct of e and its TableName method.
func entity(f *jen.File, name string, e *gen.Entity) {
	fields := make([]jen.Code, 0, len(e.Columns))
	for _, c := range e.Columns {
		fields = append(fields, jen.Id(gen.Pascal(c.Name)).Add(fieldType(c)).Tag(map[string]string{
			"db":   c.Name,
			"json": c.Name,
		}))
	}
	f.Commentf("%s is the model entity of the %s.%s table.", name, e.Schema, e.TableName)
	f.Type().Id(name).Struct(fields...)
	f.Line()
	f.Comment("TableName returns the qualified table name.")
	f.Func().Params(jen.Id(name)).Id("TableName").Params().String().Block(
		jen.Return(jen.Lit(fmt.Sprintf("%s.%s", e.Schema, e.TableName))),
	)
}

// fieldType returns the Go type of a field. Arrays become slices and
// nullable scalars pointers; slice-backed scalars stay as they are.
func fieldType(c *gen.Field) *jen.Statement {
	t := scalarType(c.Scalar)
	switch {
	case c.Array:
		return jen.Index().Add(t)
	case c.Nullable && !strings.HasPrefix(c.Scalar, "[]") && c.Scalar != "json.RawMessage":
		return jen.Op("*").Add(t)
	default:
		return t
	}
}

func scalarType(s string) *jen.Statement {
	switch s {
	case "time.Time":
		return jen.Qual("time", "Time")
	case "time.Duration":
		return jen.Qual("time", "Duration")
	case "json.RawMessage":
		return jen.Qual("encoding/json", "RawMessage")
	case "[]byte":
		return jen.Index().Byte()
	default:
		return jen.Id(s)
	}
}
