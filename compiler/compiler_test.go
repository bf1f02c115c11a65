package compiler

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/gen"
	"github.com/syssam/pgentity/compiler/load"
)

func ptr(s string) *string { return &s }

func catalog() []load.Row {
	return []load.Row{
		{Schema: "public", Table: "user_account", Column: "id", DataType: "integer", PrimaryKey: true, Default: ptr("nextval('user_account_id_seq'::regclass)")},
		{Schema: "public", Table: "orders", Column: "id", DataType: "uuid", PrimaryKey: true},
		{Schema: "public", Table: "user_account", Column: "email", DataType: "character varying", Nullable: true},
		{Schema: "public", Table: "orders", Column: "total", DataType: "numeric"},
		{Schema: "public", Table: "user_account", Column: "tags", DataType: "text", Array: true},
		{Schema: "public", Table: "user_account", Column: "mood", DataType: "USER-DEFINED"},
		{Schema: "audit", Table: "events", Column: "id", DataType: "bigint", PrimaryKey: true},
	}
}

func source(rows []load.Row) load.RowSourceFunc {
	return func(_ context.Context, schemaName string) ([]load.Row, error) {
		return rows, nil
	}
}

func config(t *testing.T, dialect, target string, opts ...gen.Option) *gen.Config {
	t.Helper()
	opts = append([]gen.Option{
		gen.WithURL("postgres://localhost/app"),
		gen.WithDialect(dialect),
		gen.WithTarget(target),
		gen.WithSchema("public"),
	}, opts...)
	cfg, err := gen.NewConfig(opts...)
	require.NoError(t, err)
	return cfg
}

func TestNewDialect(t *testing.T) {
	assert.Equal(t, []string{"go-struct", "graphql", "py-sqlalchemy", "ts-typeorm"}, Dialects())
	for _, name := range Dialects() {
		d, err := NewDialect(&gen.Config{Dialect: name})
		require.NoError(t, err)
		assert.Equal(t, name, d.Name())
	}

	_, err := NewDialect(&gen.Config{Dialect: "rb-activerecord"})
	require.Error(t, err)
	assert.True(t, pgentity.IsUnknownDialect(err))
	var ude *pgentity.UnknownDialectError
	require.ErrorAs(t, err, &ude)
	assert.Equal(t, "rb-activerecord", ude.Name)
	assert.Equal(t, Dialects(), ude.Supported)
}

func TestGenerate_SQLAlchemy(t *testing.T) {
	target := filepath.Join(t.TempDir(), "models.py")
	report, err := Generate(context.Background(), config(t, "py-sqlalchemy", target), source(catalog()))
	require.NoError(t, err)
	assert.Equal(t, "py-sqlalchemy", report.Dialect)
	assert.Equal(t, []string{target}, report.Files)
	assert.Equal(t, 2, report.Tables)

	data, err := os.ReadFile(target)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "class Orders(Base):")
	assert.Contains(t, out, "class UserAccount(Base):")
	assert.Contains(t, out, `    id = sa.Column("id", sa.Integer, primary_key=True, server_default=sa.text("nextval('user_account_id_seq'::regclass)"))`)
	assert.Contains(t, out, `    email = sa.Column("email", sa.String, nullable=True)`)
	assert.Contains(t, out, `    tags = sa.Column("tags", sa.ARRAY(sa.Text), nullable=False)`)
	assert.NotContains(t, out, "mood")
	assert.NotContains(t, out, "Events")
	assert.Equal(t, int64(len(data)), report.Bytes)
}

func TestGenerate_TypeORM(t *testing.T) {
	rows := append(catalog(), load.Row{Schema: "public", Table: "orders", Column: "meta", DataType: "hstore"})
	dir := t.TempDir()
	report, err := Generate(context.Background(), config(t, "ts-typeorm", dir, gen.WithWorkers(3)), source(rows))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "orders.ts"), filepath.Join(dir, "user_account.ts")}, report.Files)

	data, err := os.ReadFile(filepath.Join(dir, "orders.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "    meta: any;")
	assert.Contains(t, string(data), "export class Orders {")
}

func TestGenerate_Deterministic(t *testing.T) {
	for _, dialect := range Dialects() {
		t.Run(dialect, func(t *testing.T) {
			var outputs [][]byte
			for range 2 {
				target := filepath.Join(t.TempDir(), "out")
				cfg := config(t, dialect, target)
				rows := catalog()
				if dialect == "ts-typeorm" {
					require.NoError(t, os.MkdirAll(target, 0o755))
				}
				report, err := Generate(context.Background(), cfg, source(rows))
				require.NoError(t, err)
				data, err := os.ReadFile(report.Files[0])
				require.NoError(t, err)
				outputs = append(outputs, data)
			}
			assert.Equal(t, outputs[0], outputs[1])
		})
	}
}

func TestGenerate_UnknownDialectSkipsSource(t *testing.T) {
	var called bool
	src := load.RowSourceFunc(func(context.Context, string) ([]load.Row, error) {
		called = true
		return catalog(), nil
	})
	cfg := config(t, "cobol", filepath.Join(t.TempDir(), "out"))
	_, err := Generate(context.Background(), cfg, src)
	assert.True(t, errors.Is(err, pgentity.ErrUnknownDialect))
	assert.False(t, called)

	_, err = Run(context.Background(), cfg)
	assert.True(t, pgentity.IsUnknownDialect(err))
}

func TestGenerate_EmptySchema(t *testing.T) {
	target := filepath.Join(t.TempDir(), "models.py")
	cfg := config(t, "py-sqlalchemy", target, gen.WithSchema("billing"))
	_, err := Generate(context.Background(), cfg, source(catalog()))
	require.Error(t, err)
	assert.True(t, pgentity.IsEmptySchema(err))
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_StrictUnmappedType(t *testing.T) {
	rows := append(catalog(), load.Row{Schema: "public", Table: "user_account", Column: "attrs", DataType: "hstore"})
	target := filepath.Join(t.TempDir(), "models.py")
	_, err := Generate(context.Background(), config(t, "py-sqlalchemy", target), source(rows))
	require.Error(t, err)
	var ute *pgentity.UnmappedTypeError
	require.ErrorAs(t, err, &ute)
	assert.Equal(t, "hstore", ute.Type)
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}

func TestGenerate_ConnectionFailure(t *testing.T) {
	src := load.RowSourceFunc(func(context.Context, string) ([]load.Row, error) {
		return nil, errors.New("dial tcp: connection refused")
	})
	_, err := Generate(context.Background(), config(t, "graphql", filepath.Join(t.TempDir(), "schema.graphql")), src)
	require.Error(t, err)
	assert.True(t, pgentity.IsConnectionError(err))
	assert.Contains(t, err.Error(), "connection refused")
}

func TestRun_FileSource(t *testing.T) {
	dir := t.TempDir()
	dump := filepath.Join(dir, "catalog.json")
	data, err := json.Marshal(catalog())
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(dump, data, 0o644))

	target := filepath.Join(dir, "entity", "entity.go")
	cfg := config(t, "go-struct", target, gen.WithSource(gen.SourceFile), gen.WithPackage("entity"))
	cfg.URL = dump
	report, err := Run(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Tables)

	out, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(out), "package entity")
	assert.Contains(t, string(out), "type UserAccount struct")
	assert.Contains(t, string(out), "type Order struct")
}

func TestRun_MissingDump(t *testing.T) {
	cfg := config(t, "graphql", filepath.Join(t.TempDir(), "schema.graphql"), gen.WithSource(gen.SourceFile))
	cfg.URL = filepath.Join(t.TempDir(), "missing.json")
	_, err := Run(context.Background(), cfg)
	assert.True(t, pgentity.IsConnectionError(err))
}

func TestOpenSource(t *testing.T) {
	src, err := OpenSource(context.Background(), &gen.Config{Source: gen.SourceFile, URL: "rows.json"})
	require.NoError(t, err)
	assert.Equal(t, load.FileSource{Path: "rows.json"}, src.RowSource)
	assert.NoError(t, src.Close())

	_, err = OpenSource(context.Background(), &gen.Config{Source: "csv"})
	assert.True(t, gen.IsConfigError(err))

	_, err = OpenSource(context.Background(), &gen.Config{Source: gen.SourceQuery, Driver: "mysql", URL: "x"})
	assert.Error(t, err)
}
