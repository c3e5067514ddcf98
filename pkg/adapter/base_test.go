package adapter

import (
	"context"
	"database/sql"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustosql/kustosql/internal/testutil"
	"github.com/kustosql/kustosql/pkg/dialect"
)

func newMockBase(t *testing.T) (*BaseSQLAdapter, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	b := &BaseSQLAdapter{DB: db, Logger: testutil.NewTestLogger(t)}
	t.Cleanup(func() { _ = b.Close() })
	return b, mock
}

func TestBaseSQLAdapter_NotConnected(t *testing.T) {
	b := &BaseSQLAdapter{}
	ctx := context.Background()

	assert.False(t, b.IsConnected())
	assert.NoError(t, b.Close(), "closing a never-opened adapter is a no-op")
	assert.Error(t, b.Ping(ctx))
	assert.Error(t, b.Exec(ctx, "SELECT 1"))

	_, err := b.Query(ctx, "SELECT 1")
	assert.Error(t, err)

	_, err = b.ProbeColumns(ctx, "StormEvents", &dialect.Dialect{})
	assert.Error(t, err)
}

func TestBaseSQLAdapter_Exec(t *testing.T) {
	b, mock := newMockBase(t)
	mock.ExpectExec("SET NOCOUNT ON").WillReturnResult(sqlmock.NewResult(0, 0))

	err := b.Exec(context.Background(), "SET NOCOUNT ON")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_Query(t *testing.T) {
	b, mock := newMockBase(t)
	mock.ExpectQuery("SELECT name FROM users").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("ada").AddRow("grace"))

	rows, err := b.Query(context.Background(), "SELECT name FROM users")
	require.NoError(t, err)
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		require.NoError(t, rows.Scan(&name))
		names = append(names, name)
	}
	require.NoError(t, rows.Err())
	assert.Equal(t, []string{"ada", "grace"}, names)
}

func TestBaseSQLAdapter_ProbeColumns(t *testing.T) {
	b, mock := newMockBase(t)
	d := &dialect.Dialect{Name: "mssql", DefaultSchema: "dbo"}

	cols := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("EventId").OfType("BIGINT", int64(0)).Nullable(false),
		sqlmock.NewColumn("State").OfType("NVARCHAR", "").Nullable(true),
		sqlmock.NewColumn("StartTime").OfType("DATETIME2", nil),
	)
	mock.ExpectQuery(`SELECT TOP 0 \* FROM \[StormEvents\]`).WillReturnRows(cols)

	columns, err := b.ProbeColumns(context.Background(), "StormEvents", d)

	require.NoError(t, err)
	require.Len(t, columns, 3)
	assert.Equal(t, Column{Name: "EventId", Type: "BIGINT", Nullable: false, Position: 1}, columns[0])
	assert.Equal(t, Column{Name: "State", Type: "NVARCHAR", Nullable: true, Position: 2}, columns[1])
	assert.Equal(t, "DATETIME2", columns[2].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBaseSQLAdapter_ProbeColumns_UnknownNullability(t *testing.T) {
	b, mock := newMockBase(t)
	d := &dialect.Dialect{Name: "mssql"}

	// Column without nullability info: the driver reports unknown and the
	// probe must fall back to nullable.
	cols := sqlmock.NewRowsWithColumnDefinition(
		sqlmock.NewColumn("Payload").OfType("NVARCHAR", ""),
	)
	mock.ExpectQuery(`SELECT TOP 0 \* FROM \[Raw\]`).WillReturnRows(cols)

	columns, err := b.ProbeColumns(context.Background(), "Raw", d)

	require.NoError(t, err)
	require.Len(t, columns, 1)
	assert.True(t, columns[0].Nullable, "unknown nullability should default to nullable")
}

func TestBaseSQLAdapter_ProbeColumns_QueryError(t *testing.T) {
	b, mock := newMockBase(t)
	d := &dialect.Dialect{Name: "mssql"}

	mock.ExpectQuery(`SELECT TOP 0 \* FROM \[Missing\]`).WillReturnError(sql.ErrConnDone)

	_, err := b.ProbeColumns(context.Background(), "Missing", d)

	assert.ErrorIs(t, err, sql.ErrConnDone, "probe errors propagate unchanged")
}
