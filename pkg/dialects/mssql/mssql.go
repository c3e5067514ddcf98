// Package mssql registers the Microsoft SQL Server dialect.
//
// Import this package with a blank identifier to register the dialect:
//
//	import _ "github.com/kustosql/kustosql/pkg/dialects/mssql"
package mssql

import (
	"github.com/kustosql/kustosql/pkg/dialect"
)

// New returns the SQL Server dialect configuration.
// Derived dialects (Kusto) start from this and override what differs.
func New() *dialect.Dialect {
	return &dialect.Dialect{
		Name:                "mssql",
		Driver:              "sqlserver",
		DefaultSchema:       "dbo",
		MaxIdentifierLength: 128,
		IsolationLevel:      "READ COMMITTED",
		Caps: dialect.Capabilities{
			PrimaryKeys:       true,
			ForeignKeys:       true,
			Indexes:           true,
			InformationSchema: true,
			Transactions:      true,
		},
	}
}

func init() {
	dialect.Register(New())
}
