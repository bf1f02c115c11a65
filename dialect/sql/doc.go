// Package sql opens catalog connections and runs the catalog query that
// feeds the schema loader.
//
// # Connections
//
// [Open] accepts a driver name from package dialect and a connection string.
// The connection is verified with a ping so that a wrong URL fails before any
// generation work:
//
//	db, err := sql.Open(ctx, dialect.Postgres, "postgres://localhost/app?sslmode=disable")
//	if err != nil {
//	    return err // *pgentity.ConnectionError
//	}
//	defer db.Close()
//
// # Catalog
//
// [Catalog] implements load.RowSource over information_schema:
//
//	cat := sql.NewCatalog(db, sql.WithSlowQueryLog(time.Second))
//	model, err := load.Load(ctx, cat, "public")
//
// Array columns are reported with their element type, and user-defined types
// are excluded by the query itself.
package sql
