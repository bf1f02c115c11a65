// Package dialect names the database drivers pgentity can read a catalog with.
//
// Both drivers speak to PostgreSQL; they differ only in the client library:
//
//	dialect.Postgres = "postgres" // github.com/lib/pq
//	dialect.PGX      = "pgx"      // github.com/jackc/pgx/v5/stdlib
//
// # Sub-packages
//
//   - dialect/sql: connection handling and the information_schema catalog query
//   - dialect/sql/schema: catalog inspection through ariga.io/atlas
package dialect
