// Package frame materializes SQL result sets into in-memory tabular frames.
//
// A Frame holds the full result of a query: one row per result row, one
// column per selected expression, with column names and engine-reported
// types taken from the result metadata. No pagination or streaming is
// performed. Frames convert to Arrow records for columnar consumers.
package frame

import (
	"database/sql"
	"fmt"
)

// Frame is an immutable, fully materialized result set.
type Frame struct {
	columns []string
	types   []string
	rows    [][]any
}

// New builds a frame from pre-collected data. Every row must have exactly
// one value per column.
func New(columns, types []string, rows [][]any) (*Frame, error) {
	if len(types) != 0 && len(types) != len(columns) {
		return nil, fmt.Errorf("expected %d column types, got %d", len(columns), len(types))
	}
	for i, row := range rows {
		if len(row) != len(columns) {
			return nil, fmt.Errorf("row %d has %d values, expected %d", i, len(row), len(columns))
		}
	}
	if types == nil {
		types = make([]string, len(columns))
	}
	return &Frame{columns: columns, types: types, rows: rows}, nil
}

// FromRows drains rows into a frame. The caller keeps ownership of rows and
// should still close them; FromRows reads to the end but does not close.
// Driver errors during iteration propagate unchanged.
func FromRows(rows *sql.Rows) (*Frame, error) {
	columns, err := rows.Columns()
	if err != nil {
		return nil, err
	}

	types := make([]string, len(columns))
	if colTypes, err := rows.ColumnTypes(); err == nil {
		for i, ct := range colTypes {
			types[i] = ct.DatabaseTypeName()
		}
	}

	var data [][]any
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, err
		}
		for i, v := range values {
			// Normalize driver byte slices so values survive the next Scan.
			if b, ok := v.([]byte); ok {
				values[i] = string(b)
			}
		}
		data = append(data, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &Frame{columns: columns, types: types, rows: data}, nil
}

// Columns returns the column names in result order.
func (f *Frame) Columns() []string {
	out := make([]string, len(f.columns))
	copy(out, f.columns)
	return out
}

// Types returns the engine-reported type name per column. Entries may be
// empty when the driver does not report type names.
func (f *Frame) Types() []string {
	out := make([]string, len(f.types))
	copy(out, f.types)
	return out
}

// NumRows returns the number of rows in the frame.
func (f *Frame) NumRows() int {
	return len(f.rows)
}

// NumCols returns the number of columns in the frame.
func (f *Frame) NumCols() int {
	return len(f.columns)
}

// Row returns a copy of the values of row i in column order.
func (f *Frame) Row(i int) []any {
	out := make([]any, len(f.rows[i]))
	copy(out, f.rows[i])
	return out
}

// Value returns the value at row i, column named col.
func (f *Frame) Value(i int, col string) (any, bool) {
	for j, name := range f.columns {
		if name == col {
			return f.rows[i][j], true
		}
	}
	return nil, false
}
