// Package serialize writes registry snapshots as Arrow IPC streams.
package serialize

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/ipc"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/datatypes/internal/recovery"
	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

// SnapshotSchema is the layout of a registry snapshot, one row per type.
var SnapshotSchema = arrow.NewSchema([]arrow.Field{
	{Name: "extension_name", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "native_type", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "signature", Type: arrow.BinaryTypes.String, Nullable: false},
	{Name: "ordering_id", Type: arrow.BinaryTypes.String, Nullable: true},
}, nil)

// SnapshotEntry is one decoded snapshot row. Ordering is empty for types
// using the natural ordering.
type SnapshotEntry struct {
	Name      string
	Native    string
	Signature string
	Ordering  string
}

// SerializeRegistry writes the registered types, sorted by extension name,
// as an Arrow IPC stream. Planning information is read under recovery; a
// panicking type fails the snapshot with ErrInternal.
func SerializeRegistry(ctx context.Context, reg registry.Registry, allocator memory.Allocator, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}

	all := reg.AllTypes()
	slices.SortFunc(all, func(a, b types.LogicalType) int {
		return strings.Compare(a.Signature().Name(), b.Signature().Name())
	})

	builder := array.NewRecordBuilder(allocator, SnapshotSchema)
	defer builder.Release()

	nameBuilder := builder.Field(0).(*array.StringBuilder)
	nativeBuilder := builder.Field(1).(*array.StringBuilder)
	signatureBuilder := builder.Field(2).(*array.StringBuilder)
	orderingBuilder := builder.Field(3).(*array.StringBuilder)

	for _, lt := range all {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name, _ := types.ExtensionName(lt)
		info, err := recovery.RecoverToValue(logger, "PlanningInformation", func() (types.PlanningInformation, error) {
			return types.PlanningInformationOf(lt), nil
		})
		if err != nil {
			return nil, err
		}

		nameBuilder.Append(name)
		nativeBuilder.Append(lt.Native().String())
		signatureBuilder.Append(lt.Signature().String())
		if info.Ordering.IsDefault() {
			orderingBuilder.AppendNull()
		} else {
			orderingBuilder.Append(info.Ordering.ID())
		}
	}

	record := builder.NewRecordBatch()
	defer record.Release()

	var buf bytes.Buffer
	writer := ipc.NewWriter(&buf, ipc.WithSchema(SnapshotSchema), ipc.WithAllocator(allocator))
	if err := writer.Write(record); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write IPC record: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close IPC writer: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressSnapshot compresses serialized snapshot data using ZStandard.
func CompressSnapshot(data []byte) ([]byte, error) {
	compressor, err := NewCompressor()
	if err != nil {
		return nil, err
	}
	defer compressor.Close()

	return compressor.Compress(nil, data), nil
}

// DecompressSnapshot reverses CompressSnapshot.
func DecompressSnapshot(data []byte) ([]byte, error) {
	decompressor, err := NewDecompressor(0)
	if err != nil {
		return nil, err
	}
	defer decompressor.Close()

	return decompressor.Decompress(data)
}

// ReadSnapshot decodes an uncompressed snapshot stream.
func ReadSnapshot(data []byte, allocator memory.Allocator) ([]SnapshotEntry, error) {
	reader, err := ipc.NewReader(bytes.NewReader(data), ipc.WithAllocator(allocator))
	if err != nil {
		return nil, fmt.Errorf("failed to open IPC stream: %w", err)
	}
	defer reader.Release()

	if !reader.Schema().Equal(SnapshotSchema) {
		return nil, fmt.Errorf("unexpected snapshot schema: %s", reader.Schema())
	}

	var entries []SnapshotEntry
	for reader.Next() {
		record := reader.RecordBatch()
		names := record.Column(0).(*array.String)
		natives := record.Column(1).(*array.String)
		signatures := record.Column(2).(*array.String)
		orderings := record.Column(3).(*array.String)
		for i := 0; i < int(record.NumRows()); i++ {
			e := SnapshotEntry{
				Name:      names.Value(i),
				Native:    natives.Value(i),
				Signature: signatures.Value(i),
			}
			if orderings.IsValid(i) {
				e.Ordering = orderings.Value(i)
			}
			entries = append(entries, e)
		}
	}
	if err := reader.Err(); err != nil {
		return nil, fmt.Errorf("failed to read IPC stream: %w", err)
	}
	return entries, nil
}
