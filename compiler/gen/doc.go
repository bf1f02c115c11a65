// Package gen provides the dialect abstraction and the shared machinery used
// to turn a catalog schema model into ORM entity source code.
//
// # Architecture
//
// The generation pipeline follows this flow:
//
//	Catalog rows (dialect/sql, dialect/sql/schema)
//	        ↓
//	   compiler/load.Load
//	        ↓
//	   *schema.Model
//	        ↓
//	   Dialect.Generate (TypeSystem → Entity → Renderer)
//	        ↓
//	   []*Artifact
//	        ↓
//	   Writer (one file, or one file per table)
//
// # Key Types
//
//   - Dialect: one output convention (py-sqlalchemy, ts-typeorm, ...)
//   - TypeSystem: scalar mapping, array wrapping and the unmapped-type policy
//   - Entity / Field: the rendering context of one table and its columns
//   - Renderer: the template collaborator, backed by text/template
//   - Writer: persists artifacts according to the dialect Layout
//   - Config: run configuration, built with functional options or YAML
//
// # Type Systems
//
// A TypeSystem with an empty Fallback is strict: a column whose type is not
// in the allow-list fails the run with *pgentity.UnmappedTypeError. A
// permissive TypeSystem substitutes its Fallback instead:
//
//	strict := gen.TypeSystem{Scalar: pyScalar, Array: pyArray}
//	loose := gen.TypeSystem{Scalar: tsScalar, Array: tsArray, Fallback: "any"}
//
// Arrays are wrapped by the TypeSystem after the scalar lookup, never by the
// scalar mapper itself.
//
// # Configuration
//
// Configuration is done via the functional options pattern:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithURL("postgres://localhost/app"),
//	    gen.WithDialect("py-sqlalchemy"),
//	    gen.WithTarget("./models.py"),
//	    gen.WithSchema("public"),
//	)
//
// or loaded from YAML with LoadConfig.
//
// # Error Handling
//
//   - ConfigError: missing or invalid configuration
//   - GenerationError: failures while persisting artifacts
//
// Catalog, mapping and render failures use the error kinds of the root
// pgentity package.
package gen
