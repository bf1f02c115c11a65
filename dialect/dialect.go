package dialect

import "slices"

// Database drivers.
const (
	Postgres = "postgres" // lib/pq
	PGX      = "pgx"      // jackc/pgx stdlib
)

// Drivers lists the supported driver names.
var Drivers = []string{Postgres, PGX}

// Supported reports whether name is a supported driver.
func Supported(name string) bool {
	return slices.Contains(Drivers, name)
}
