package frame

import (
	"fmt"
	"time"

	"github.com/apache/arrow/go/v13/arrow"
	"github.com/apache/arrow/go/v13/arrow/array"
	"github.com/apache/arrow/go/v13/arrow/memory"
)

// ArrowRecord converts the frame into a single Arrow record.
// Column types are inferred from the first non-nil Go value in each column:
// integers map to int64, floats to float64, bools to boolean, time.Time to
// microsecond timestamps, everything else to UTF-8 strings. The caller must
// Release the record.
func (f *Frame) ArrowRecord(alloc memory.Allocator) (arrow.Record, error) {
	if alloc == nil {
		alloc = memory.NewGoAllocator()
	}

	fields := make([]arrow.Field, f.NumCols())
	builders := make([]array.Builder, f.NumCols())
	for i, name := range f.columns {
		dt := f.arrowType(i)
		fields[i] = arrow.Field{Name: name, Type: dt, Nullable: true}
		builders[i] = array.NewBuilder(alloc, dt)
	}
	defer func() {
		for _, b := range builders {
			b.Release()
		}
	}()

	for _, row := range f.rows {
		for i, v := range row {
			if err := appendValue(builders[i], v); err != nil {
				return nil, fmt.Errorf("column %s: %w", f.columns[i], err)
			}
		}
	}

	cols := make([]arrow.Array, len(builders))
	for i, b := range builders {
		cols[i] = b.NewArray()
	}
	defer func() {
		for _, c := range cols {
			c.Release()
		}
	}()

	schema := arrow.NewSchema(fields, nil)
	return array.NewRecord(schema, cols, int64(f.NumRows())), nil
}

// arrowType infers the Arrow type of column i from its first non-nil value.
func (f *Frame) arrowType(i int) arrow.DataType {
	for _, row := range f.rows {
		switch row[i].(type) {
		case nil:
			continue
		case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
			return arrow.PrimitiveTypes.Int64
		case float32, float64:
			return arrow.PrimitiveTypes.Float64
		case bool:
			return arrow.FixedWidthTypes.Boolean
		case time.Time:
			return &arrow.TimestampType{Unit: arrow.Microsecond, TimeZone: "UTC"}
		default:
			return arrow.BinaryTypes.String
		}
	}
	return arrow.BinaryTypes.String
}

func appendValue(b array.Builder, v any) error {
	if v == nil {
		b.AppendNull()
		return nil
	}

	switch bld := b.(type) {
	case *array.Int64Builder:
		n, err := toInt64(v)
		if err != nil {
			return err
		}
		bld.Append(n)
	case *array.Float64Builder:
		switch x := v.(type) {
		case float64:
			bld.Append(x)
		case float32:
			bld.Append(float64(x))
		default:
			n, err := toInt64(v)
			if err != nil {
				return err
			}
			bld.Append(float64(n))
		}
	case *array.BooleanBuilder:
		x, ok := v.(bool)
		if !ok {
			return fmt.Errorf("expected bool, got %T", v)
		}
		bld.Append(x)
	case *array.TimestampBuilder:
		t, ok := v.(time.Time)
		if !ok {
			return fmt.Errorf("expected time.Time, got %T", v)
		}
		bld.Append(arrow.Timestamp(t.UTC().UnixMicro()))
	case *array.StringBuilder:
		bld.Append(fmt.Sprint(v))
	default:
		return fmt.Errorf("unsupported arrow builder %T", b)
	}
	return nil
}

func toInt64(v any) (int64, error) {
	switch x := v.(type) {
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return int64(x), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return int64(x), nil
	default:
		return 0, fmt.Errorf("expected integer, got %T", v)
	}
}
