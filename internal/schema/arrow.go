package schema

import (
	"bytes"
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"tree-nesting/internal/mapping"
)

// Schema metadata keys written by ToArrow.
const (
	MetadataRoot           = "tree_nesting.root"
	MetadataTemplatePrefix = "tree_nesting.template:"
)

// ArrowType maps a value type to its Arrow data type.
func ArrowType(vt mapping.ValueType) (arrow.DataType, error) {
	switch vt {
	case mapping.ValueTypeKeyword, mapping.ValueTypeText:
		return arrow.BinaryTypes.String, nil
	case mapping.ValueTypeInteger:
		return arrow.PrimitiveTypes.Int32, nil
	case mapping.ValueTypeLong:
		return arrow.PrimitiveTypes.Int64, nil
	case mapping.ValueTypeDouble:
		return arrow.PrimitiveTypes.Float64, nil
	case mapping.ValueTypeBoolean:
		return arrow.FixedWidthTypes.Boolean, nil
	case mapping.ValueTypeDate:
		return arrow.FixedWidthTypes.Date32, nil
	case mapping.ValueTypeTimestamp:
		return arrow.FixedWidthTypes.Timestamp_ms, nil
	default:
		return nil, fmt.Errorf("no arrow type for value type %q", vt)
	}
}

// ToArrow converts the field tree into an Arrow schema: values become
// nullable columns, objects become struct columns. Templates have no fixed
// column name; they are listed in the schema metadata as
// "tree_nesting.template:<path>" = "<value type>".
func ToArrow(idx *Index) (*arrow.Schema, error) {
	keys := []string{MetadataRoot}
	values := []string{idx.Root}

	fields, err := arrowFields(idx.Tree.Children, &keys, &values)
	if err != nil {
		return nil, err
	}

	md := arrow.NewMetadata(keys, values)

	return arrow.NewSchema(fields, &md), nil
}

func arrowFields(nodes []*Node, keys, values *[]string) ([]arrow.Field, error) {
	fields := make([]arrow.Field, 0, len(nodes))

	for _, n := range nodes {
		switch n.Kind {
		case NodeTemplate:
			*keys = append(*keys, MetadataTemplatePrefix+n.Path)
			*values = append(*values, string(n.ValueType))

		case NodeObject:
			children, err := arrowFields(n.Children, keys, values)
			if err != nil {
				return nil, err
			}

			fields = append(fields, arrow.Field{Name: n.Name, Type: arrow.StructOf(children...), Nullable: true})

		default:
			dt, err := ArrowType(n.ValueType)
			if err != nil {
				return nil, fmt.Errorf("field %s: %w", n.Path, err)
			}

			fields = append(fields, arrow.Field{Name: n.Name, Type: dt, Nullable: true})
		}
	}

	return fields, nil
}

// WriteArrowIPC writes the schema as an Arrow IPC stream holding one empty
// record batch, readable by any Arrow implementation.
func WriteArrowIPC(w io.Writer, schema *arrow.Schema, alloc memory.Allocator) error {
	if alloc == nil {
		alloc = memory.DefaultAllocator
	}

	builder := array.NewRecordBuilder(alloc, schema)
	defer builder.Release()

	record := builder.NewRecordBatch()
	defer record.Release()

	var buf bytes.Buffer

	writer := ipc.NewWriter(&buf, ipc.WithSchema(schema), ipc.WithAllocator(alloc))

	if err := writer.Write(record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write IPC record: %w", err)
	}

	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close IPC writer: %w", err)
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("failed to write IPC stream: %w", err)
	}

	return nil
}
