// Package mssql provides the Microsoft SQL Server adapter for kustosql.
//
// The adapter connects either through the native TDS driver
// (github.com/microsoft/go-mssqldb) or through a platform ODBC driver
// (github.com/alexbrainman/odbc), selected by the "driver" option. Table
// reflection uses the information_schema catalog views, which SQL Server
// populates fully. The Kusto adapter embeds this one and replaces exactly
// the reflection entry points that assume those views exist.
package mssql

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	// Register the platform ODBC driver under the "odbc" name.
	_ "github.com/alexbrainman/odbc"
	// Register the native TDS driver under the "sqlserver" name.
	_ "github.com/microsoft/go-mssqldb"

	"github.com/kustosql/kustosql/pkg/adapter"
	"github.com/kustosql/kustosql/pkg/dialect"
	dmssql "github.com/kustosql/kustosql/pkg/dialects/mssql"
)

// Adapter implements the adapter.Adapter interface for SQL Server.
type Adapter struct {
	adapter.BaseSQLAdapter

	dialect *dialect.Dialect
}

// New creates a new SQL Server adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Adapter{
		BaseSQLAdapter: adapter.BaseSQLAdapter{Logger: logger},
		dialect:        dmssql.New(),
	}
}

// Dialect returns the SQL Server dialect configuration.
func (a *Adapter) Dialect() *dialect.Dialect {
	return a.dialect
}

// Connect establishes a connection to SQL Server.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	driver, dsn := BuildDSN(cfg)

	a.Logger.Debug("connecting to sql server",
		slog.String("driver", driver),
		slog.String("host", cfg.Host),
		slog.String("database", cfg.Database))

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("failed to open connection: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping sql server: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}
