// Package dialect provides SQL dialect configuration for kustosql adapters.
//
// This package contains the public contract for dialect definitions used by
// adapters and the CLI. Concrete dialect implementations are registered from
// pkg/dialects/*/ packages.
package dialect

import (
	"fmt"
	"strings"
)

// Capabilities declares which reflection surfaces an engine actually exposes.
// An adapter consults these before issuing catalog queries so that engines
// which never populate a catalog (Kusto) are never probed for it.
type Capabilities struct {
	// PrimaryKeys is true if primary key constraints are discoverable.
	PrimaryKeys bool

	// ForeignKeys is true if referential constraints are discoverable.
	ForeignKeys bool

	// Indexes is true if secondary indexes are discoverable.
	Indexes bool

	// InformationSchema is true if information_schema catalog views are
	// populated the way SQL Server populates them.
	InformationSchema bool

	// Transactions is true if the engine supports explicit transactions.
	Transactions bool
}

// Dialect represents a SQL dialect configuration.
//
// A Dialect is pure data plus a few formatting helpers. Behavior that differs
// between engines (how to reflect a table, how to authenticate) lives in the
// adapter that owns the dialect, not here.
type Dialect struct {
	// Name identifies the dialect in the registry (e.g., "kusto", "mssql").
	Name string

	// Driver is the database/sql driver name used by default.
	Driver string

	// DefaultSchema is the schema assumed for unqualified table names.
	DefaultSchema string

	// MaxIdentifierLength is the longest identifier the engine accepts.
	MaxIdentifierLength int

	// IsolationLevel is the fixed isolation level the engine reports.
	IsolationLevel string

	// Caps declares the reflection surfaces the engine exposes.
	Caps Capabilities
}

// QuoteIdentifier quotes an identifier using T-SQL bracket quoting.
// Embedded closing brackets are doubled.
func (d *Dialect) QuoteIdentifier(name string) string {
	return "[" + strings.ReplaceAll(name, "]", "]]") + "]"
}

// QuoteTable quotes a possibly schema-qualified table reference.
func (d *Dialect) QuoteTable(table string) string {
	parts := strings.Split(table, ".")
	for i, p := range parts {
		parts[i] = d.QuoteIdentifier(p)
	}
	return strings.Join(parts, ".")
}

// FormatPlaceholder returns the parameter placeholder for position i (1-based).
// Both supported engines speak the T-SQL "@pN" style.
func (d *Dialect) FormatPlaceholder(i int) string {
	return fmt.Sprintf("@p%d", i)
}

// SplitQualifiedName splits a table reference into schema and name,
// falling back to the dialect's default schema.
func (d *Dialect) SplitQualifiedName(table string) (schema, name string) {
	if parts := strings.SplitN(table, ".", 2); len(parts) == 2 {
		return parts[0], parts[1]
	}
	return d.DefaultSchema, table
}
