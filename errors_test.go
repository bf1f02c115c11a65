package pgentity_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/pgentity"
)

func TestConnectionError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := pgentity.NewConnectionError(errors.New("dial tcp: refused"))
		assert.Equal(t, "pgentity: catalog connection failed: dial tcp: refused", err.Error())
	})

	t.Run("Is and Unwrap", func(t *testing.T) {
		cause := errors.New("refused")
		err := pgentity.NewConnectionError(cause)
		assert.True(t, errors.Is(err, pgentity.ErrConnectionFailed))
		assert.True(t, errors.Is(err, cause))
	})

	t.Run("IsConnectionError", func(t *testing.T) {
		wrapped := fmt.Errorf("load: %w", pgentity.NewConnectionError(errors.New("x")))
		assert.True(t, pgentity.IsConnectionError(wrapped))
		assert.True(t, pgentity.IsConnectionError(pgentity.ErrConnectionFailed))
		assert.False(t, pgentity.IsConnectionError(errors.New("other")))
		assert.False(t, pgentity.IsConnectionError(nil))
	})
}

func TestEmptySchemaError(t *testing.T) {
	err := pgentity.NewEmptySchemaError("billing")
	assert.Equal(t, `pgentity: no tables in schema "billing"`, err.Error())
	assert.True(t, errors.Is(err, pgentity.ErrEmptySchema))
	assert.True(t, pgentity.IsEmptySchema(fmt.Errorf("wrap: %w", err)))
	assert.False(t, pgentity.IsEmptySchema(nil))
}

func TestUnmappedTypeError(t *testing.T) {
	t.Run("With column", func(t *testing.T) {
		err := pgentity.NewUnmappedTypeError("user_account", "attrs", "hstore")
		assert.Contains(t, err.Error(), `"hstore"`)
		assert.Contains(t, err.Error(), "user_account.attrs")
	})

	t.Run("Type only", func(t *testing.T) {
		err := &pgentity.UnmappedTypeError{Type: "hstore"}
		assert.Equal(t, `pgentity: unhandled type "hstore"`, err.Error())
	})

	t.Run("IsUnmappedType", func(t *testing.T) {
		err := pgentity.NewUnmappedTypeError("t", "c", "hstore")
		assert.True(t, errors.Is(err, pgentity.ErrUnmappedType))
		assert.True(t, pgentity.IsUnmappedType(fmt.Errorf("wrap: %w", err)))
		assert.False(t, pgentity.IsUnmappedType(errors.New("other")))
	})
}

func TestRenderError(t *testing.T) {
	cause := errors.New(`template: entity:3: function "nope" not defined`)
	err := pgentity.NewRenderError("entity.ts.tmpl", "orders", cause)

	assert.Contains(t, err.Error(), "entity.ts.tmpl")
	assert.Contains(t, err.Error(), "orders")
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, pgentity.ErrTemplateRender))
	assert.True(t, pgentity.IsRenderError(err))

	noTable := pgentity.NewRenderError("header", "", cause)
	assert.NotContains(t, noTable.Error(), "table")
}

func TestUnknownDialectError(t *testing.T) {
	err := pgentity.NewUnknownDialectError("rb-activerecord", "py-sqlalchemy", "ts-typeorm")
	assert.Contains(t, err.Error(), `"rb-activerecord"`)
	assert.Contains(t, err.Error(), "py-sqlalchemy")
	assert.True(t, errors.Is(err, pgentity.ErrUnknownDialect))
	assert.True(t, pgentity.IsUnknownDialect(err))

	bare := pgentity.NewUnknownDialectError("x")
	assert.Equal(t, `pgentity: unknown dialect "x"`, bare.Error())
}

func TestDumpError(t *testing.T) {
	cause := errors.New("unexpected EOF")
	err := pgentity.NewDumpError("shop/catalog.json", cause)
	assert.Equal(t, "pgentity: invalid catalog dump shop/catalog.json: unexpected EOF", err.Error())
	assert.Equal(t, cause, err.Unwrap())
	assert.True(t, errors.Is(err, pgentity.ErrInvalidDump))
	assert.True(t, pgentity.IsDumpError(fmt.Errorf("load: %w", err)))
	assert.False(t, pgentity.IsConnectionError(err))
	assert.False(t, pgentity.IsDumpError(nil))
}
