// Package pgentity generates ORM entity definitions from the catalog of a
// PostgreSQL schema.
//
// The catalog is loaded into the schema model (package schema) by the loader
// (package compiler/load). A dialect (package compiler/gen and its
// subpackages) maps every column type and renders the entities, and the
// pipeline in package compiler ties the steps together. This package holds
// the error kinds shared by all of them.
package pgentity
