// This file registers the SQL Server adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/kustosql/kustosql/pkg/adapters/mssql"
package mssql

import (
	"log/slog"

	"github.com/kustosql/kustosql/pkg/adapter"

	// Import dialect to ensure it's registered
	_ "github.com/kustosql/kustosql/pkg/dialects/mssql"
)

func init() {
	adapter.Register("mssql", func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
