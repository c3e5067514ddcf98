// Package core defines the shared language of the kustosql system.
//
// This package contains:
//   - Connection configuration (AdapterConfig)
//   - Table metadata entities (Column, TableMetadata, constraint types)
//   - The Rows wrapper shared by all adapters
//
// The Golden Rule: pkg/core imports ONLY stdlib.
// All other packages depend on core, not the reverse.
package core
