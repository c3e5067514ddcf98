// Package adapter provides database adapter interfaces for kustosql.
//
// This package contains the public contract that all engine adapters must
// implement. Concrete adapter implementations are in pkg/adapters/
// subdirectories and register themselves on import.
package adapter

import (
	"context"

	"github.com/kustosql/kustosql/pkg/core"
	"github.com/kustosql/kustosql/pkg/dialect"
)

// Type aliases so adapter implementations can refer to shared types without
// importing pkg/core directly.
type (
	// Config is an alias for core.AdapterConfig.
	Config = core.AdapterConfig

	// Column is an alias for core.Column.
	Column = core.Column

	// Metadata is an alias for core.TableMetadata.
	Metadata = core.TableMetadata

	// Rows is an alias for core.Rows.
	Rows = core.Rows
)

// Adapter defines the interface that all engine adapters must implement.
// It provides methods for connecting to an engine, executing SQL, and
// reflecting table metadata.
type Adapter interface {
	// Connect establishes a connection to the engine using the provided config.
	Connect(ctx context.Context, cfg Config) error

	// Close closes the connection and releases resources.
	Close() error

	// Ping verifies the connection is alive.
	Ping(ctx context.Context) error

	// Exec executes a SQL statement that doesn't return rows.
	Exec(ctx context.Context, sql string) error

	// Query executes a SQL statement that returns rows.
	Query(ctx context.Context, sql string) (*Rows, error)

	// GetTableMetadata reflects column metadata for a table.
	GetTableMetadata(ctx context.Context, table string) (*Metadata, error)

	// HasTable reports whether a table exists and is queryable.
	HasTable(ctx context.Context, table string) (bool, error)

	// TableNames lists the tables visible in the connected database.
	TableNames(ctx context.Context) ([]string, error)

	// Dialect returns the dialect configuration for this adapter.
	Dialect() *dialect.Dialect
}

// ConstraintReflector is implemented by adapters that can answer constraint
// and index reflection requests. Adapters for engines without relational
// constraints still implement it and return empty results, so callers never
// need to special-case the engine.
type ConstraintReflector interface {
	// GetPrimaryKey reflects the primary key constraint of a table.
	GetPrimaryKey(ctx context.Context, table string) (*core.PrimaryKey, error)

	// GetForeignKeys reflects the referential constraints of a table.
	GetForeignKeys(ctx context.Context, table string) ([]core.ForeignKey, error)

	// GetIndexes reflects the secondary indexes of a table.
	GetIndexes(ctx context.Context, table string) ([]core.Index, error)
}
