// pgentity generates ORM entity source code from the catalog of a
// PostgreSQL schema.
//
//	pgentity -d py-sqlalchemy -o models.py -s public postgres://localhost/app
//	pgentity -d ts-typeorm -o entities -s public --driver pgx postgres://localhost/app
//	pgentity --config pgentity.yaml
package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.New(color.FgRed).Sprint("error:"), err)
		os.Exit(1)
	}
}
