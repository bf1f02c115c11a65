// Package compiler drives a generation run: it resolves the requested
// dialect, loads the catalog of one schema into the schema model and writes
// the generated entities.
//
// Usage:
//
//	cfg, err := gen.NewConfig(
//		gen.WithURL("postgres://localhost/app?sslmode=disable"),
//		gen.WithDialect("py-sqlalchemy"),
//		gen.WithTarget("models.py"),
//		gen.WithSchema("public"),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//	report, err := compiler.Run(ctx, cfg)
package compiler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/compiler/gen/gostruct"
	"github.com/syssam/pgentity/compiler/gen/graphql"
	"github.com/syssam/pgentity/compiler/gen/sqlalchemy"
	"github.com/syssam/pgentity/compiler/gen/typeorm"
	"github.com/syssam/pgentity/compiler/load"
	pgsql "github.com/syssam/pgentity/dialect/sql"
	sqlschema "github.com/syssam/pgentity/dialect/sql/schema"
)

// dialects maps dialect names to their constructors.
var dialects = map[string]func(*gen.Config) gen.Dialect{
	sqlalchemy.Name: func(*gen.Config) gen.Dialect { return sqlalchemy.New() },
	typeorm.Name:    func(*gen.Config) gen.Dialect { return typeorm.New() },
	gostruct.Name:   func(cfg *gen.Config) gen.Dialect { return gostruct.New(cfg.Package) },
	graphql.Name:    func(*gen.Config) gen.Dialect { return graphql.New() },
}

// Dialects returns the supported dialect names, sorted.
func Dialects() []string {
	return slices.Sorted(maps.Keys(dialects))
}

// NewDialect returns the dialect named by cfg.Dialect, or an
// *pgentity.UnknownDialectError.
func NewDialect(cfg *gen.Config) (gen.Dialect, error) {
	newDialect, ok := dialects[cfg.Dialect]
	if !ok {
		return nil, pgentity.NewUnknownDialectError(cfg.Dialect, Dialects()...)
	}
	return newDialect(cfg), nil
}

// Generate runs the pipeline over src: the dialect is resolved first, so an
// unknown dialect fails before the catalog is read.
func Generate(ctx context.Context, cfg *gen.Config, src load.RowSource) (*gen.Report, error) {
	d, err := NewDialect(cfg)
	if err != nil {
		return nil, err
	}
	m, err := load.Load(ctx, src, cfg.Schema)
	if err != nil {
		return nil, err
	}
	artifacts, err := d.Generate(m)
	if err != nil {
		return nil, err
	}
	report, err := gen.NewWriter(d, cfg.Target).WithWorkers(cfg.Workers).Write(ctx, artifacts)
	if err != nil {
		return nil, err
	}
	report.Tables = m.Len()
	slog.Info("entities generated", "dialect", d.Name(), "tables", report.Tables, "files", len(report.Files))
	return report, nil
}

// Source is an opened catalog source.
type Source struct {
	load.RowSource
	db *pgsql.DB
}

// Close releases the database handle of the source, if any.
func (s *Source) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// OpenSource opens the catalog source selected by cfg.Source.
func OpenSource(ctx context.Context, cfg *gen.Config) (*Source, error) {
	switch cfg.Source {
	case gen.SourceFile:
		return &Source{RowSource: load.FileSource{Path: cfg.URL}}, nil
	case "", gen.SourceQuery, gen.SourceAtlas:
	default:
		return nil, gen.NewConfigError("Source", cfg.Source, "unsupported source")
	}
	db, err := pgsql.Open(ctx, cfg.Driver, cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.Source == gen.SourceAtlas {
		insp, err := sqlschema.NewInspector(db)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("compiler: atlas inspector: %w", err), db.Close())
		}
		return &Source{RowSource: insp, db: db}, nil
	}
	var opts []pgsql.CatalogOption
	if cfg.SlowQuery > 0 {
		opts = append(opts, pgsql.WithSlowQueryLog(cfg.SlowQuery))
	}
	return &Source{RowSource: pgsql.NewCatalog(db, opts...), db: db}, nil
}

// Run opens the configured source and generates the entities. The dialect
// is resolved before the source is opened.
func Run(ctx context.Context, cfg *gen.Config) (report *gen.Report, err error) {
	if _, err := NewDialect(cfg); err != nil {
		return nil, err
	}
	src, err := OpenSource(ctx, cfg)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := src.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	return Generate(ctx, cfg, src)
}
