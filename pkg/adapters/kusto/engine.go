package kusto

import (
	"context"
	"log/slog"

	"github.com/kustosql/kustosql/pkg/adapter"
	"github.com/kustosql/kustosql/pkg/credential"
	"github.com/kustosql/kustosql/pkg/frame"
)

// Option configures engine construction.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	scope   string
	connOpt map[string]string
}

// WithLogger sets the structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithScope overrides the OAuth2 scope requested for access tokens.
func WithScope(scope string) Option {
	return func(o *options) { o.scope = scope }
}

// WithConnectionOption appends a raw key=value pair to the connection string.
func WithConnectionOption(key, value string) Option {
	return func(o *options) {
		if o.connOpt == nil {
			o.connOpt = map[string]string{}
		}
		o.connOpt[key] = value
	}
}

// BuildEngine returns a connected engine handle for a cluster/database pair.
//
// cluster is the bare cluster name (or a full host), database the Kusto
// database, and cred anything implementing azcore.TokenCredential; a nil
// cred uses the ambient Azure credential chain. The handle pools
// connections; the credential is invoked for a fresh token whenever the pool
// opens a new physical connection. Errors from the credential or the driver
// propagate unchanged.
func BuildEngine(ctx context.Context, cluster, database string, cred credential.TokenCredential, opts ...Option) (*Adapter, error) {
	o := options{scope: credential.DefaultScope}
	for _, opt := range opts {
		opt(&o)
	}

	params := map[string]any{"scope": o.scope}
	if cred != nil {
		params["credential"] = cred
	}

	eng := New(o.logger)
	eng.scope = o.scope

	cfg := adapter.Config{
		Type:     "kusto",
		Host:     cluster,
		Database: database,
		Options:  o.connOpt,
		Params:   params,
	}
	if err := eng.Connect(ctx, cfg); err != nil {
		return nil, err
	}
	return eng, nil
}

// ReflectTable reflects a table's column metadata through the engine handle.
func ReflectTable(ctx context.Context, eng *Adapter, table string) (*adapter.Metadata, error) {
	return eng.GetTableMetadata(ctx, table)
}

// RunQuery executes a query and materializes the entire result set into a
// frame: one row per result row, one column per selected expression, names
// and types from the result metadata. No pagination or streaming.
func RunQuery(ctx context.Context, eng *Adapter, query string) (*frame.Frame, error) {
	rows, err := eng.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return frame.FromRows(rows.Rows)
}
