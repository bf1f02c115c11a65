// Package graphql implements the graphql dialect: a GraphQL SDL document
// declaring one object type per table.
//
// The dialect is permissive. Types outside the allow-list become the JSON
// scalar.
package graphql

import (
	"bytes"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/vektah/gqlparser/v2/ast"
	"github.com/vektah/gqlparser/v2/formatter"

	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/schema"
)

// Name is the dialect name.
const Name = "graphql"

// FileName is the informational name of the generated document.
const FileName = "schema.graphql"

// Custom scalars declared by every document.
const (
	DateTime = "DateTime"
	JSON     = "JSON"
	BigInt   = "BigInt"
)

var scalars = map[string]string{
	"boolean":          "Boolean",
	"smallint":         "Int",
	"integer":          "Int",
	"bigint":           BigInt,
	"real":             "Float",
	"double precision": "Float",
	"character":        "String",
	"text":             "String",
	"numeric":          "String",
	"inet":             "String",
	"tstzrange":        "String",
	"int4range":        "String",
	"uuid":             "ID",
	"date":             DateTime,
	"json":             JSON,
	"jsonb":            JSON,
}

// MapScalar maps a scalar PostgreSQL type to a GraphQL named type.
func MapScalar(raw string) (string, bool) {
	switch {
	case strings.HasPrefix(raw, "character varying"):
		return "String", true
	case strings.HasPrefix(raw, "timestamp") && strings.HasSuffix(raw, "range"):
		return "String", true
	case strings.HasPrefix(raw, "timestamp"):
		return DateTime, true
	}
	t, ok := scalars[raw]
	return t, ok
}

// TypeSystem is the permissive type system of the dialect.
var TypeSystem = gen.TypeSystem{
	Scalar: MapScalar,
	Array: func(elem string) string {
		return "[" + elem + "]"
	},
	Fallback: JSON,
}

// Dialect generates a GraphQL schema document.
type Dialect struct{}

// New returns the dialect.
func New() *Dialect {
	return &Dialect{}
}

// Name implements gen.Dialect.
func (*Dialect) Name() string { return Name }

// Layout implements gen.Dialect.
func (*Dialect) Layout() gen.Layout { return gen.SingleFile }

// builtins are the scalars of the GraphQL prelude.
var builtins = []string{"Int", "Float", "String", "Boolean", "ID"}

// Generate implements gen.Dialect. An object whose name is taken by a
// scalar or an earlier object gets the "Type" suffix, then a numeric one.
func (*Dialect) Generate(m *schema.Model) ([]*gen.Artifact, error) {
	doc := &ast.SchemaDocument{}
	taken := make(map[string]bool)
	for _, s := range builtins {
		taken[s] = true
	}
	for _, s := range []string{DateTime, JSON, BigInt} {
		taken[s] = true
		doc.Definitions = append(doc.Definitions, &ast.Definition{Kind: ast.Scalar, Name: s})
	}
	for _, t := range m.Tables {
		e, err := gen.NewEntity(t, TypeSystem, false)
		if err != nil {
			return nil, err
		}
		name := objectName(taken, e.EntityName)
		taken[name] = true
		doc.Definitions = append(doc.Definitions, object(name, e))
	}
	var buf bytes.Buffer
	formatter.NewFormatter(&buf).FormatSchemaDocument(doc)
	return []*gen.Artifact{{Name: FileName, Content: buf.Bytes()}}, nil
}

func objectName(taken map[string]bool, entityName string) string {
	if !taken[entityName] {
		return entityName
	}
	name := entityName + "Type"
	for i := 2; taken[name]; i++ {
		name = fmt.Sprintf("%sType%d", entityName, i)
	}
	return name
}

func object(name string, e *gen.Entity) *ast.Definition {
	def := &ast.Definition{
		Kind:        ast.Object,
		Name:        name,
		Description: fmt.Sprintf("%s.%s", e.Schema, e.TableName),
	}
	for _, c := range e.Columns {
		def.Fields = append(def.Fields, &ast.FieldDefinition{
			Name: FieldName(c.Name),
			Type: fieldType(c),
		})
	}
	return def
}

// fieldType returns the GraphQL type of c. Array elements are nullable,
// the outer type is non-null unless the column is nullable.
func fieldType(c *gen.Field) *ast.Type {
	switch {
	case c.Array && c.Nullable:
		return ast.ListType(ast.NamedType(c.Scalar, nil), nil)
	case c.Array:
		return ast.NonNullListType(ast.NamedType(c.Scalar, nil), nil)
	case c.Nullable:
		return ast.NamedType(c.Scalar, nil)
	default:
		return ast.NonNullNamedType(c.Scalar, nil)
	}
}

// FieldName returns the lower camel-cased name of a column.
//
//	created_at => createdAt
//	ID         => iD
func FieldName(column string) string {
	s := gen.ToCamelCase(column)
	r, n := utf8.DecodeRuneInString(s)
	if n == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[n:]
}
