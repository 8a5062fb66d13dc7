package datatypes

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/datatypes/duckdb"
	"github.com/hugr-lab/datatypes/interchange"
	"github.com/hugr-lab/datatypes/internal/recovery"
	"github.com/hugr-lab/datatypes/internal/serialize"
	"github.com/hugr-lab/datatypes/logical"
	"github.com/hugr-lab/datatypes/ordering"
	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

// TypeSystem ties a registry to the operations that depend on it.
// It is safe for concurrent use as long as the registry is.
//
// Format, SortIndices and comparator construction are guarded: a panic in
// extension code they call surfaces as an ErrInternal error. The closure
// returned by Comparator runs in the caller and is not guarded.
type TypeSystem struct {
	registry  registry.Registry
	allocator memory.Allocator
	logger    *slog.Logger
	maxSize   uint64
}

// NewTypeSystem validates config and creates a TypeSystem.
//
// Example:
//
//	ts, err := datatypes.NewTypeSystem(datatypes.Config{
//	    Preload: []types.LogicalType{extensions.NewIntOrFloatType()},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dfTypes, err := ts.ResolveSchema(record.Schema())
func NewTypeSystem(config Config) (*TypeSystem, error) {
	reg := config.Registry
	if reg == nil {
		reg = registry.NewMemoryRegistry()
	}

	allocator := config.Allocator
	if allocator == nil {
		allocator = memory.DefaultAllocator
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
		if config.LogLevel != nil {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: *config.LogLevel}))
		}
	}

	maxSize := config.MaxMessageSize
	if maxSize == 0 {
		maxSize = interchange.DefaultMaxMessageSize
	}

	ts := &TypeSystem{registry: reg, allocator: allocator, logger: logger, maxSize: maxSize}
	for _, lt := range config.Preload {
		if _, err := ts.Register(lt); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}

	logger.Debug("Type system created", "types", len(reg.AllTypes()))
	return ts, nil
}

// Registry returns the underlying registry.
func (ts *TypeSystem) Registry() registry.Registry { return ts.registry }

// Register adds lt to the registry and returns the type it replaced, if any.
func (ts *TypeSystem) Register(lt types.LogicalType) (types.LogicalType, error) {
	prev, err := ts.registry.Register(lt)
	if err != nil {
		return nil, err
	}
	name, _ := types.ExtensionName(lt)
	ts.logger.Debug("Registered logical type", "name", name, "replaced", prev != nil)
	return prev, nil
}

// Deregister removes the type registered under name and returns it, or nil.
func (ts *TypeSystem) Deregister(name string) types.LogicalType {
	prev := ts.registry.Deregister(name)
	ts.logger.Debug("Deregistered logical type", "name", name, "found", prev != nil)
	return prev
}

// ResolveField determines the DFType of field.
func (ts *TypeSystem) ResolveField(field arrow.Field) (types.DFType, error) {
	df, err := registry.Resolve(ts.registry, field)
	if err != nil {
		return types.DFType{}, err
	}
	if registry.IsUnknown(df) {
		ts.logger.Debug("Unregistered extension type, using fallback",
			"field", field.Name,
			"type", df.LogicalType().Signature().String(),
		)
	}
	return df, nil
}

// ResolveSchema resolves every field of schema in order.
func (ts *TypeSystem) ResolveSchema(schema *arrow.Schema) ([]types.DFType, error) {
	out := make([]types.DFType, schema.NumFields())
	for i, f := range schema.Fields() {
		df, err := ts.ResolveField(f)
		if err != nil {
			return nil, err
		}
		out[i] = df
	}
	return out, nil
}

// LogicalValue returns the logical value at index i of arr.
func (ts *TypeSystem) LogicalValue(arr arrow.Array, i int) (logical.Scalar, error) {
	return logical.FromArray(arr, i)
}

// Format renders the value at index i of arr with the printer of df's
// logical type. arr must be stored as df.StorageType().
func (ts *TypeSystem) Format(df types.DFType, arr arrow.Array, i int) (string, error) {
	if !arrow.TypeEqual(arr.DataType(), df.StorageType()) {
		return "", types.NewError(types.ErrTypeMismatch, "array", arr.DataType().String(),
			"expected storage type %s", df.StorageType())
	}
	return recovery.RecoverToValue(ts.logger, "Format", func() (string, error) {
		return types.PrettyPrintArray(types.PrettyPrinterOf(df.LogicalType()), arr, i)
	})
}

// Comparator returns a row comparator for arr under lt's ordering. A panic
// while the ordering builds the comparator becomes an ErrInternal error;
// panics from the returned closure reach the caller unchanged. Use
// SortIndices to sort under recovery.
func (ts *TypeSystem) Comparator(lt types.LogicalType, arr arrow.Array, opts types.SortOptions) (types.Comparator, error) {
	cmp, err := recovery.RecoverToValue(ts.logger, "Comparator", func() (types.Comparator, error) {
		return ordering.NewComparator(lt, arr, opts)
	})
	if err != nil {
		return nil, err
	}
	return cmp, nil
}

// SortIndices returns the row indices of arr in sorted order. The sort is
// stable.
func (ts *TypeSystem) SortIndices(lt types.LogicalType, arr arrow.Array, opts types.SortOptions) ([]int, error) {
	return recovery.RecoverToValue(ts.logger, "SortIndices", func() ([]int, error) {
		return ordering.Sort(lt, arr, opts)
	})
}

// SQLTypeName returns the DuckDB type name that stores values of lt.
func (ts *TypeSystem) SQLTypeName(lt types.LogicalType) (string, error) {
	return duckdb.SQLTypeName(lt)
}

// Snapshot returns the registry contents as a ZStandard-compressed Arrow IPC
// stream.
func (ts *TypeSystem) Snapshot(ctx context.Context) ([]byte, error) {
	data, err := serialize.SerializeRegistry(ctx, ts.registry, ts.allocator, ts.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize registry: %w", err)
	}
	return serialize.CompressSnapshot(data)
}

// NewCodec returns an interchange codec resolving extension names through
// the registry. The caller must Close it.
func (ts *TypeSystem) NewCodec(opts ...interchange.Option) (*interchange.Codec, error) {
	opts = append([]interchange.Option{interchange.WithMaxMessageSize(ts.maxSize)}, opts...)
	return interchange.NewCodec(ts.registry, opts...)
}

// SnapshotEntry is one type of a decoded registry snapshot.
type SnapshotEntry = serialize.SnapshotEntry

// ReadSnapshot decodes the output of Snapshot.
func ReadSnapshot(data []byte, allocator memory.Allocator) ([]SnapshotEntry, error) {
	raw, err := serialize.DecompressSnapshot(data)
	if err != nil {
		return nil, err
	}
	return serialize.ReadSnapshot(raw, allocator)
}
