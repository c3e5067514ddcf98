package mssql

import (
	"context"
	"fmt"

	"github.com/kustosql/kustosql/pkg/adapter"
	"github.com/kustosql/kustosql/pkg/core"
)

// Catalog queries against information_schema. These assume a SQL Server
// that populates the catalog views; engines that do not (Kusto) must not
// reach this code.
const (
	columnsQuery = `
		SELECT
			column_name,
			data_type,
			is_nullable,
			ordinal_position
		FROM information_schema.columns
		WHERE table_schema = @p1 AND table_name = @p2
		ORDER BY ordinal_position
	`

	primaryKeyQuery = `
		SELECT kcu.constraint_name, kcu.column_name
		FROM information_schema.table_constraints tc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = tc.constraint_name
			AND kcu.table_schema = tc.table_schema
		WHERE tc.constraint_type = 'PRIMARY KEY'
			AND tc.table_schema = @p1 AND tc.table_name = @p2
		ORDER BY kcu.ordinal_position
	`

	foreignKeysQuery = `
		SELECT
			rc.constraint_name,
			kcu.column_name,
			ref.table_name,
			ref.column_name
		FROM information_schema.referential_constraints rc
		JOIN information_schema.key_column_usage kcu
			ON kcu.constraint_name = rc.constraint_name
			AND kcu.constraint_schema = rc.constraint_schema
		JOIN information_schema.key_column_usage ref
			ON ref.constraint_name = rc.unique_constraint_name
			AND ref.constraint_schema = rc.unique_constraint_schema
			AND ref.ordinal_position = kcu.ordinal_position
		WHERE kcu.table_schema = @p1 AND kcu.table_name = @p2
		ORDER BY rc.constraint_name, kcu.ordinal_position
	`

	indexesQuery = `
		SELECT i.name, c.name, i.is_unique
		FROM sys.indexes i
		JOIN sys.index_columns ic
			ON ic.object_id = i.object_id AND ic.index_id = i.index_id
		JOIN sys.columns c
			ON c.object_id = ic.object_id AND c.column_id = ic.column_id
		WHERE i.object_id = OBJECT_ID(@p1)
			AND i.is_primary_key = 0 AND i.name IS NOT NULL
		ORDER BY i.name, ic.key_ordinal
	`

	hasTableQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE (table_type = 'BASE TABLE' OR table_type = 'VIEW')
			AND table_schema = @p1 AND table_name = @p2
	`

	tableNamesQuery = `
		SELECT table_name
		FROM information_schema.tables
		WHERE (table_type = 'BASE TABLE' OR table_type = 'VIEW')
			AND table_schema = @p1
		ORDER BY table_name
	`
)

// GetTableMetadata reflects column metadata via information_schema.columns.
func (a *Adapter) GetTableMetadata(ctx context.Context, table string) (*adapter.Metadata, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, name := a.dialect.SplitQualifiedName(table)

	rows, err := a.DB.QueryContext(ctx, columnsQuery, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query column metadata: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var columns []adapter.Column
	for rows.Next() {
		var col adapter.Column
		var nullable string
		if err := rows.Scan(&col.Name, &col.Type, &nullable, &col.Position); err != nil {
			return nil, fmt.Errorf("failed to scan column metadata: %w", err)
		}
		col.Nullable = nullable == "YES"
		columns = append(columns, col)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating column metadata: %w", err)
	}

	if len(columns) == 0 {
		return nil, fmt.Errorf("table %s not found", table)
	}

	a.markPrimaryKeyColumns(ctx, schema, name, columns)

	return &adapter.Metadata{
		Schema:  schema,
		Name:    name,
		Columns: columns,
	}, nil
}

// markPrimaryKeyColumns flags columns that belong to the primary key.
// Failures are non-fatal: the column list is still useful without PK flags.
func (a *Adapter) markPrimaryKeyColumns(ctx context.Context, schema, name string, columns []adapter.Column) {
	pk, err := a.GetPrimaryKey(ctx, schema+"."+name)
	if err != nil || pk == nil {
		return
	}
	for _, pkCol := range pk.Columns {
		for i := range columns {
			if columns[i].Name == pkCol {
				columns[i].PrimaryKey = true
			}
		}
	}
}

// GetPrimaryKey reflects the primary key constraint of a table.
func (a *Adapter) GetPrimaryKey(ctx context.Context, table string) (*core.PrimaryKey, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, name := a.dialect.SplitQualifiedName(table)

	rows, err := a.DB.QueryContext(ctx, primaryKeyQuery, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query primary key: %w", err)
	}
	defer func() { _ = rows.Close() }()

	pk := &core.PrimaryKey{}
	for rows.Next() {
		var column string
		if err := rows.Scan(&pk.Name, &column); err != nil {
			return nil, fmt.Errorf("failed to scan primary key: %w", err)
		}
		pk.Columns = append(pk.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if len(pk.Columns) == 0 {
		return nil, nil
	}
	return pk, nil
}

// GetForeignKeys reflects the referential constraints of a table.
func (a *Adapter) GetForeignKeys(ctx context.Context, table string) ([]core.ForeignKey, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, name := a.dialect.SplitQualifiedName(table)

	rows, err := a.DB.QueryContext(ctx, foreignKeysQuery, schema, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query foreign keys: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byName := map[string]*core.ForeignKey{}
	var order []string
	for rows.Next() {
		var constraint, column, refTable, refColumn string
		if err := rows.Scan(&constraint, &column, &refTable, &refColumn); err != nil {
			return nil, fmt.Errorf("failed to scan foreign key: %w", err)
		}
		fk, ok := byName[constraint]
		if !ok {
			fk = &core.ForeignKey{Name: constraint, ReferencedTable: refTable}
			byName[constraint] = fk
			order = append(order, constraint)
		}
		fk.Columns = append(fk.Columns, column)
		fk.ReferencedColumns = append(fk.ReferencedColumns, refColumn)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	fks := make([]core.ForeignKey, 0, len(order))
	for _, constraint := range order {
		fks = append(fks, *byName[constraint])
	}
	return fks, nil
}

// GetIndexes reflects the secondary indexes of a table via sys catalogs.
func (a *Adapter) GetIndexes(ctx context.Context, table string) ([]core.Index, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema, name := a.dialect.SplitQualifiedName(table)

	rows, err := a.DB.QueryContext(ctx, indexesQuery, schema+"."+name)
	if err != nil {
		return nil, fmt.Errorf("failed to query indexes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	byName := map[string]*core.Index{}
	var order []string
	for rows.Next() {
		var idxName, column string
		var unique bool
		if err := rows.Scan(&idxName, &column, &unique); err != nil {
			return nil, fmt.Errorf("failed to scan index: %w", err)
		}
		idx, ok := byName[idxName]
		if !ok {
			idx = &core.Index{Name: idxName, Unique: unique}
			byName[idxName] = idx
			order = append(order, idxName)
		}
		idx.Columns = append(idx.Columns, column)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	indexes := make([]core.Index, 0, len(order))
	for _, idxName := range order {
		indexes = append(indexes, *byName[idxName])
	}
	return indexes, nil
}

// HasTable reports whether a table or view exists.
func (a *Adapter) HasTable(ctx context.Context, table string) (bool, error) {
	if a.DB == nil {
		return false, fmt.Errorf("database connection not established")
	}

	schema, name := a.dialect.SplitQualifiedName(table)

	rows, err := a.DB.QueryContext(ctx, hasTableQuery, schema, name)
	if err != nil {
		return false, fmt.Errorf("failed to query tables catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	exists := rows.Next()
	if err := rows.Err(); err != nil {
		return false, err
	}
	return exists, nil
}

// TableNames lists tables and views in the default schema.
func (a *Adapter) TableNames(ctx context.Context) ([]string, error) {
	if a.DB == nil {
		return nil, fmt.Errorf("database connection not established")
	}

	schema := a.Cfg.Schema
	if schema == "" {
		schema = a.dialect.DefaultSchema
	}

	rows, err := a.DB.QueryContext(ctx, tableNamesQuery, schema)
	if err != nil {
		return nil, fmt.Errorf("failed to query tables catalog: %w", err)
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
