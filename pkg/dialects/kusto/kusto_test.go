package kusto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kustosql/kustosql/pkg/dialect"
	"github.com/kustosql/kustosql/pkg/dialects/mssql"
)

func TestNewDerivesFromSQLServer(t *testing.T) {
	d := New()
	base := mssql.New()

	assert.Equal(t, "kusto", d.Name)
	assert.Equal(t, base.Driver, d.Driver, "driver is inherited")
	assert.Equal(t, base.DefaultSchema, d.DefaultSchema, "default schema is inherited")
	assert.Equal(t, base.MaxIdentifierLength, d.MaxIdentifierLength)
	assert.Equal(t, base.IsolationLevel, d.IsolationLevel)
}

func TestCapabilitiesAreOff(t *testing.T) {
	d := New()

	assert.False(t, d.Caps.PrimaryKeys)
	assert.False(t, d.Caps.ForeignKeys)
	assert.False(t, d.Caps.Indexes)
	assert.False(t, d.Caps.InformationSchema)
	assert.False(t, d.Caps.Transactions)
}

func TestRegisteredOnImport(t *testing.T) {
	d, ok := dialect.Get(Name)
	require.True(t, ok, "kusto dialect should register on import")
	assert.Equal(t, Name, d.Name)
}
