package mssql

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustosql/kustosql/internal/testutil"
	"github.com/kustosql/kustosql/pkg/adapter"
)

func newMockAdapter(t *testing.T) (*Adapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	a := New(testutil.NewTestLogger(t))
	a.DB = db
	t.Cleanup(func() { _ = a.Close() })
	return a, mock
}

func TestGetTableMetadata(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("dbo", "users").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("id", "int", "NO", 1).
			AddRow("name", "nvarchar", "YES", 2))
	mock.ExpectQuery(`constraint_type = 'PRIMARY KEY'`).
		WithArgs("dbo", "users").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name"}).
			AddRow("PK_users", "id"))

	meta, err := a.GetTableMetadata(context.Background(), "users")

	require.NoError(t, err)
	assert.Equal(t, "dbo", meta.Schema)
	assert.Equal(t, "users", meta.Name)
	require.Len(t, meta.Columns, 2)
	assert.Equal(t, adapter.Column{Name: "id", Type: "int", Nullable: false, PrimaryKey: true, Position: 1}, meta.Columns[0])
	assert.Equal(t, adapter.Column{Name: "name", Type: "nvarchar", Nullable: true, Position: 2}, meta.Columns[1])
}

func TestGetTableMetadata_QualifiedName(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("analytics", "events").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}).
			AddRow("ts", "datetime2", "NO", 1))
	mock.ExpectQuery(`constraint_type = 'PRIMARY KEY'`).
		WithArgs("analytics", "events").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name"}))

	meta, err := a.GetTableMetadata(context.Background(), "analytics.events")

	require.NoError(t, err)
	assert.Equal(t, "analytics", meta.Schema)
	assert.False(t, meta.Columns[0].PrimaryKey, "no PK rows means no PK flags")
}

func TestGetTableMetadata_NotFound(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.columns`).
		WithArgs("dbo", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"column_name", "data_type", "is_nullable", "ordinal_position"}))

	_, err := a.GetTableMetadata(context.Background(), "missing")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestGetPrimaryKey(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`constraint_type = 'PRIMARY KEY'`).
		WithArgs("dbo", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name"}).
			AddRow("PK_orders", "order_id").
			AddRow("PK_orders", "line_no"))

	pk, err := a.GetPrimaryKey(context.Background(), "orders")

	require.NoError(t, err)
	require.NotNil(t, pk)
	assert.Equal(t, "PK_orders", pk.Name)
	assert.Equal(t, []string{"order_id", "line_no"}, pk.Columns)
}

func TestGetPrimaryKey_None(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`constraint_type = 'PRIMARY KEY'`).
		WithArgs("dbo", "heap").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name"}))

	pk, err := a.GetPrimaryKey(context.Background(), "heap")

	require.NoError(t, err)
	assert.Nil(t, pk, "tables without a PK return nil, not an error")
}

func TestGetForeignKeys(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.referential_constraints`).
		WithArgs("dbo", "orders").
		WillReturnRows(sqlmock.NewRows([]string{"constraint_name", "column_name", "table_name", "column_name"}).
			AddRow("FK_orders_users", "user_id", "users", "id").
			AddRow("FK_orders_items", "item_id", "items", "id"))

	fks, err := a.GetForeignKeys(context.Background(), "orders")

	require.NoError(t, err)
	require.Len(t, fks, 2)
	assert.Equal(t, "FK_orders_users", fks[0].Name)
	assert.Equal(t, []string{"user_id"}, fks[0].Columns)
	assert.Equal(t, "users", fks[0].ReferencedTable)
	assert.Equal(t, []string{"id"}, fks[0].ReferencedColumns)
}

func TestGetIndexes(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM sys\.indexes`).
		WithArgs("dbo.users").
		WillReturnRows(sqlmock.NewRows([]string{"name", "name", "is_unique"}).
			AddRow("IX_users_email", "email", true).
			AddRow("IX_users_name", "last_name", false).
			AddRow("IX_users_name", "first_name", false))

	indexes, err := a.GetIndexes(context.Background(), "users")

	require.NoError(t, err)
	require.Len(t, indexes, 2)
	assert.Equal(t, "IX_users_email", indexes[0].Name)
	assert.True(t, indexes[0].Unique)
	assert.Equal(t, []string{"last_name", "first_name"}, indexes[1].Columns)
}

func TestHasTable(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.tables`).
		WithArgs("dbo", "users").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("users"))
	mock.ExpectQuery(`FROM information_schema\.tables`).
		WithArgs("dbo", "missing").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}))

	exists, err := a.HasTable(context.Background(), "users")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = a.HasTable(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestTableNames(t *testing.T) {
	a, mock := newMockAdapter(t)

	mock.ExpectQuery(`FROM information_schema\.tables`).
		WithArgs("dbo").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).
			AddRow("orders").
			AddRow("users"))

	names, err := a.TableNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, names)
}

func TestTableNames_ConfiguredSchema(t *testing.T) {
	a, mock := newMockAdapter(t)
	a.Cfg = adapter.Config{Schema: "analytics"}

	mock.ExpectQuery(`FROM information_schema\.tables`).
		WithArgs("analytics").
		WillReturnRows(sqlmock.NewRows([]string{"table_name"}).AddRow("events"))

	names, err := a.TableNames(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"events"}, names)
}

func TestRegisteredOnImport(t *testing.T) {
	factory, ok := adapter.Get("mssql")
	require.True(t, ok, "mssql adapter should register on import")

	a := factory(nil)
	_, isMSSQL := a.(*Adapter)
	assert.True(t, isMSSQL)
}
