package core

import (
	"database/sql"
)

// AdapterConfig holds configuration for connecting to a database engine.
type AdapterConfig struct {
	// Type selects the registered adapter (e.g., "kusto", "mssql").
	Type string

	// Host is the server to connect to. For Kusto this is the bare cluster
	// name; the adapter appends the ".kusto.windows.net" domain.
	Host string

	// Port is the port number for network-based engines (0 uses the default).
	Port int

	// Database is the database name.
	Database string

	// Username for password-based authentication.
	Username string

	// Password for password-based authentication.
	Password string

	// Schema is the default schema to use.
	Schema string

	// Options contains additional driver-specific connection string options.
	Options map[string]string

	// Params carries adapter-specific values that don't fit a connection
	// string, such as a token credential object.
	Params map[string]any
}

// Column represents a column in a database table.
type Column struct {
	// Name is the column name.
	Name string

	// Type is the engine-reported data type of the column.
	Type string

	// Nullable indicates whether the column allows NULL values.
	Nullable bool

	// PrimaryKey indicates whether the column is part of the primary key.
	PrimaryKey bool

	// Position is the ordinal position of the column in the table (1-based).
	Position int
}

// TableMetadata holds metadata about a database table.
type TableMetadata struct {
	// Schema is the schema containing the table.
	Schema string

	// Name is the table name.
	Name string

	// Columns contains metadata for each column, in ordinal order.
	Columns []Column
}

// PrimaryKey describes a table's primary key constraint.
// A zero value means the table has no discoverable primary key.
type PrimaryKey struct {
	Name    string
	Columns []string
}

// ForeignKey describes a single referential constraint.
type ForeignKey struct {
	Name              string
	Columns           []string
	ReferencedTable   string
	ReferencedColumns []string
}

// Index describes a secondary index on a table.
type Index struct {
	Name    string
	Columns []string
	Unique  bool
}

// Rows wraps sql.Rows to provide a consistent interface across adapters.
type Rows struct {
	*sql.Rows
}
