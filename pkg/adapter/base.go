package adapter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/kustosql/kustosql/pkg/dialect"
)

// BaseSQLAdapter provides common database/sql functionality for adapters.
// Embed this struct in concrete adapter implementations to get standard
// Close, Ping, Exec, and Query implementations.
type BaseSQLAdapter struct {
	DB     *sql.DB
	Cfg    Config
	Logger *slog.Logger
}

// Close closes the database connection.
func (b *BaseSQLAdapter) Close() error {
	if b.DB != nil {
		if b.Logger != nil {
			b.Logger.Debug("closing database connection")
		}
		return b.DB.Close()
	}
	return nil
}

// Ping verifies the connection is alive.
func (b *BaseSQLAdapter) Ping(ctx context.Context) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	return b.DB.PingContext(ctx)
}

// Exec executes a SQL statement that doesn't return rows.
func (b *BaseSQLAdapter) Exec(ctx context.Context, sqlStr string) error {
	if b.DB == nil {
		return fmt.Errorf("database connection not established")
	}
	_, err := b.DB.ExecContext(ctx, sqlStr)
	if err != nil {
		return fmt.Errorf("failed to execute SQL: %w", err)
	}
	return nil
}

// Query executes a SQL statement that returns rows.
func (b *BaseSQLAdapter) Query(ctx context.Context, sqlStr string) (*Rows, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}
	//nolint:rowserrcheck // rows.Err() must be checked by caller after iteration completes
	rows, err := b.DB.QueryContext(ctx, sqlStr)
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &Rows{Rows: rows}, nil
}

// IsConnected returns true if the database connection is established.
func (b *BaseSQLAdapter) IsConnected() bool {
	return b.DB != nil
}

// ProbeColumns reflects column metadata without touching catalog views.
// It executes a zero-row probe (SELECT TOP 0 *) against the table and reads
// the driver-reported cursor descriptors. This is the only reflection
// strategy that works on engines which accept T-SQL but never populate
// information_schema. Errors from the probe propagate unchanged.
func (b *BaseSQLAdapter) ProbeColumns(ctx context.Context, table string, d *dialect.Dialect) ([]Column, error) {
	if b.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	probe := fmt.Sprintf("SELECT TOP 0 * FROM %s", d.QuoteTable(table)) //nolint:gosec // identifier is bracket-quoted
	rows, err := b.DB.QueryContext(ctx, probe)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	types, err := rows.ColumnTypes()
	if err != nil {
		return nil, fmt.Errorf("failed to read column descriptors: %w", err)
	}

	columns := make([]Column, 0, len(types))
	for i, ct := range types {
		// Drivers that cannot determine nullability report unknown; treat
		// those columns as nullable, matching the engine's own behavior.
		nullable, known := ct.Nullable()
		columns = append(columns, Column{
			Name:     ct.Name(),
			Type:     ct.DatabaseTypeName(),
			Nullable: nullable || !known,
			Position: i + 1,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return columns, nil
}
