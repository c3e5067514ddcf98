// This file registers the Kusto adapter with the adapter registry.
// Import this package with a blank identifier to register the adapter:
//
//	import _ "github.com/kustosql/kustosql/pkg/adapters/kusto"
//
// Registration routes the "kusto" engine type to this adapter rather than
// the SQL Server base it embeds. RegisterDialect is exposed for callers who
// prefer an explicit call over the import side effect; it is idempotent.
package kusto

import (
	"log/slog"

	"github.com/kustosql/kustosql/pkg/adapter"

	// Import dialect to ensure it's registered
	_ "github.com/kustosql/kustosql/pkg/dialects/kusto"
)

// Name is the registry key the adapter is registered under.
const Name = "kusto"

func init() {
	RegisterDialect()
}

// RegisterDialect registers the Kusto adapter under Name. Safe to call more
// than once.
func RegisterDialect() {
	adapter.Register(Name, func(logger *slog.Logger) adapter.Adapter { return New(logger) })
}
