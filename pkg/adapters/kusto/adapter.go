// Package kusto provides the Azure Data Explorer (Kusto) adapter for kustosql.
//
// Kusto exposes a SQL endpoint over TDS that understands enough T-SQL for the
// SQL Server adapter to drive it, but it never populates information_schema
// or the sys constraint catalogs. This adapter embeds the SQL Server adapter
// and replaces exactly the reflection entry points that would issue catalog
// queries:
//
//   - column reflection runs a zero-row probe and reads the driver-reported
//     cursor descriptors instead of querying information_schema.columns
//   - primary key, foreign key, and index reflection return empty results
//     unconditionally
//   - table listing goes through the engine's management surface
//
// Everything else — SQL text, quoting, parameter binding — is inherited.
package kusto

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/kustosql/kustosql/pkg/adapter"
	"github.com/kustosql/kustosql/pkg/adapters/mssql"
	"github.com/kustosql/kustosql/pkg/core"
	"github.com/kustosql/kustosql/pkg/credential"
	"github.com/kustosql/kustosql/pkg/dialect"
	dkusto "github.com/kustosql/kustosql/pkg/dialects/kusto"
)

// ClusterDomain is appended to bare cluster names to form the TDS host.
const ClusterDomain = ".kusto.windows.net"

// showTablesCommand lists tables through the engine's management surface.
// sp_execute_kql is how the Kusto TDS endpoint runs native query text.
const showTablesCommand = "EXEC sp_execute_kql N'.show tables | project TableName'"

// kustoTypeNames maps Kusto's internal column type names to the SQL type
// names the rest of the stack expects. Types the engine reports in SQL form
// already pass through unchanged.
var kustoTypeNames = map[string]string{
	"DateTime":     "datetime2",
	"I32":          "int",
	"I64":          "bigint",
	"StringBuffer": "nvarchar",
	"R64":          "real",
}

// Adapter implements the adapter.Adapter interface for Kusto.
// It embeds the SQL Server adapter and overrides only reflection and
// connection establishment.
type Adapter struct {
	mssql.Adapter

	dialect *dialect.Dialect
	scope   string
}

// New creates a new Kusto adapter instance.
// If logger is nil, a discard logger is used.
func New(logger *slog.Logger) *Adapter {
	return &Adapter{
		Adapter: *mssql.New(logger),
		dialect: dkusto.New(),
		scope:   credential.DefaultScope,
	}
}

// Dialect returns the Kusto dialect configuration.
func (a *Adapter) Dialect() *dialect.Dialect {
	return a.dialect
}

// IsolationLevel is fixed: the engine has no transactions, so the adapter
// reports READ COMMITTED and never issues SET TRANSACTION ISOLATION LEVEL.
func (a *Adapter) IsolationLevel() string {
	return a.dialect.IsolationLevel
}

// Connect establishes a token-authenticated connection to the cluster.
//
// The credential (cfg.Params["credential"], defaulting to
// DefaultAzureCredential) is asked for a fresh bearer token before each new
// physical connection: TDS/ODBC connections cannot take per-query tokens, so
// the token rides in as a connection attribute at connect time. Credential
// errors and driver errors surface unchanged.
func (a *Adapter) Connect(ctx context.Context, cfg adapter.Config) error {
	connector, err := NewConnector(cfg, a.scope)
	if err != nil {
		return err
	}

	a.Logger.Debug("connecting to kusto",
		slog.String("cluster", cfg.Host),
		slog.String("database", cfg.Database))

	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to ping kusto cluster: %w", err)
	}

	a.DB = db
	a.Cfg = cfg
	return nil
}

// GetTableMetadata reflects column metadata with a zero-row probe.
// Kusto does not populate information_schema, so instead of the inherited
// catalog query the adapter executes SELECT TOP 0 * against the table and
// reads the cursor descriptors the driver reports. Probe errors propagate
// unchanged; no retry is attempted.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	columns, err := a.ProbeColumns(ctx, table, a.dialect)
	if err != nil {
		return nil, err
	}

	for i := range columns {
		columns[i].Type = normalizeTypeName(columns[i].Type)
		// Kusto columns are always nullable and never auto-increment.
		columns[i].Nullable = true
	}

	schema, name := a.dialect.SplitQualifiedName(table)
	return &adapter.Metadata{
		Schema:  schema,
		Name:    name,
		Columns: columns,
	}, nil
}

// GetPrimaryKey returns no primary key: the engine has no relational
// constraints to reflect.
func (a *Adapter) GetPrimaryKey(_ context.Context, _ string) (*core.PrimaryKey, error) {
	return nil, nil
}

// GetForeignKeys returns no foreign keys: the engine has no relational
// constraints to reflect.
func (a *Adapter) GetForeignKeys(_ context.Context, _ string) ([]core.ForeignKey, error) {
	return nil, nil
}

// GetIndexes returns no indexes: the engine exposes no secondary index
// catalog.
func (a *Adapter) GetIndexes(_ context.Context, _ string) ([]core.Index, error) {
	return nil, nil
}

// HasTable probes the table with a zero-row query. A probe failure means the
// table is not queryable, which is the only existence notion the engine has.
func (a *Adapter) HasTable(ctx context.Context, table string) (bool, error) {
	if !a.IsConnected() {
		return false, fmt.Errorf("database connection not established")
	}
	if _, err := a.ProbeColumns(ctx, table, a.dialect); err != nil {
		return false, nil
	}
	return true, nil
}

// TableNames lists tables via the engine's management surface.
func (a *Adapter) TableNames(ctx context.Context) ([]string, error) {
	rows, err := a.Query(ctx, showTablesCommand)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan table name: %w", err)
		}
		names = append(names, name)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return names, nil
}

// normalizeTypeName folds Kusto's internal type names into SQL type names.
func normalizeTypeName(name string) string {
	if mapped, ok := kustoTypeNames[name]; ok {
		return mapped
	}
	return strings.ToLower(name)
}
