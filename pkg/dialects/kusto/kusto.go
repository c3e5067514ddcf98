// Package kusto registers the Azure Data Explorer (Kusto) dialect.
//
// Kusto speaks enough T-SQL through its SQL endpoint that the dialect is the
// SQL Server dialect with the reflection surfaces it does not expose switched
// off. Kusto never populates information_schema or constraint catalogs, so
// every capability that would trigger a catalog query is disabled.
//
// Import this package with a blank identifier to register the dialect:
//
//	import _ "github.com/kustosql/kustosql/pkg/dialects/kusto"
package kusto

import (
	"github.com/kustosql/kustosql/pkg/dialect"
	"github.com/kustosql/kustosql/pkg/dialects/mssql"
)

// Name is the registry key for the Kusto dialect.
const Name = "kusto"

// New returns the Kusto dialect configuration.
func New() *dialect.Dialect {
	d := mssql.New()
	d.Name = Name
	d.Caps = dialect.Capabilities{
		PrimaryKeys:       false,
		ForeignKeys:       false,
		Indexes:           false,
		InformationSchema: false,
		Transactions:      false,
	}
	return d
}

func init() {
	dialect.Register(New())
}
