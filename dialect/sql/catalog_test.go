package sql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/pgentity"
	"github.com/syssam/pgentity/compiler/load"
)

var catalogColumns = []string{
	"table_schema", "table_name", "column_name", "column_default",
	"is_nullable", "is_pk", "data_type", "is_array",
}

func newMock(t *testing.T) (*DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCatalogRows(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(CatalogQuery).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("public", "user_account", "id", "nextval('user_account_id_seq'::regclass)", false, true, "integer", false).
			AddRow("public", "user_account", "email", nil, true, false, "character varying", false).
			AddRow("public", "user_account", "tags", nil, true, false, "text", true))

	rows, err := NewCatalog(db).Rows(context.Background(), "public")
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
	require.Len(t, rows, 3)

	id := rows[0]
	assert.Equal(t, "user_account", id.Table)
	assert.True(t, id.PrimaryKey)
	require.NotNil(t, id.Default)
	assert.Equal(t, "nextval('user_account_id_seq'::regclass)", *id.Default)

	email := rows[1]
	assert.Nil(t, email.Default)
	assert.True(t, email.Nullable)
	assert.Equal(t, "character varying", email.DataType)

	tags := rows[2]
	assert.Equal(t, "text", tags.DataType)
	assert.True(t, tags.Array)
}

func TestCatalogRows_Load(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(CatalogQuery).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("public", "user_account", "id", nil, false, true, "integer", false).
			AddRow("public", "orders", "id", nil, false, true, "bigint", false))

	m, err := load.Load(context.Background(), NewCatalog(db), "public")
	require.NoError(t, err)
	require.Equal(t, 2, m.Len())
	assert.Equal(t, "orders", m.Tables[0].Name)
}

func TestCatalogRows_QueryError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(CatalogQuery).
		WithArgs("public").
		WillReturnError(errors.New(`relation "information_schema.columns" does not exist`))

	_, err := NewCatalog(db).Rows(context.Background(), "public")
	require.Error(t, err)
	assert.True(t, pgentity.IsConnectionError(err))
	assert.Contains(t, err.Error(), "does not exist")
}

func TestCatalogRows_RowError(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(CatalogQuery).
		WithArgs("public").
		WillReturnRows(sqlmock.NewRows(catalogColumns).
			AddRow("public", "t", "c", nil, false, false, "text", false).
			RowError(0, errors.New("connection reset")))

	_, err := NewCatalog(db).Rows(context.Background(), "public")
	require.Error(t, err)
	assert.True(t, errors.Is(err, pgentity.ErrConnectionFailed))
}

func TestCatalogRows_SlowQueryHook(t *testing.T) {
	db, mock := newMock(t)
	mock.ExpectQuery(CatalogQuery).
		WithArgs("public").
		WillDelayFor(5 * time.Millisecond).
		WillReturnRows(sqlmock.NewRows(catalogColumns))

	var called bool
	cat := NewCatalog(db, WithSlowQueryHook(time.Nanosecond, func(_ context.Context, query string, d time.Duration) {
		called = true
		assert.Equal(t, CatalogQuery, query)
		assert.Positive(t, d)
	}))
	rows, err := cat.Rows(context.Background(), "public")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.True(t, called)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := Open(context.Background(), "mysql", "root@/app")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported driver "mysql"`)
	assert.False(t, pgentity.IsConnectionError(err))
}
