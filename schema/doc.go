// Package schema holds the in-memory model of a database schema as read
// from the PostgreSQL catalog.
//
// A [Model] is built once by the loader (see compiler/load) and is read-only
// afterwards. Every dialect generator consumes the same model:
//
//	Catalog rows
//	     ↓
//	compiler/load.Load
//	     ↓
//	*schema.Model (ordered []*schema.Table)
//	     ↓
//	gen.Dialect.Generate
//
// # Columns
//
// [Column.Type] always carries the scalar element type. Array-ness lives only
// in [Column.Array]; a column declared as text[] has Type "text" and Array set.
//
// # Identity
//
// Tables are identified by their (schema, name) pair, see [Table.Key] and
// [Table.Equal]. Column contents never take part in table identity.
package schema
