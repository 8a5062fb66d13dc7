package serialize

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"

	"github.com/apache/arrow-go/v18/arrow/memory"

	"github.com/hugr-lab/datatypes/extensions"
	"github.com/hugr-lab/datatypes/registry"
	"github.com/hugr-lab/datatypes/types"
)

func newRegistry(t *testing.T) *registry.MemoryRegistry {
	t.Helper()
	reg, err := registry.NewMemoryRegistryWithTypes(
		extensions.NewIntOrFloatType(),
		types.NewUuidType(),
		extensions.NewGeometryType(),
	)
	if err != nil {
		t.Fatalf("Expected registry, got error: %v", err)
	}
	return reg
}

// TestSerializeRegistry tests that a snapshot reads back sorted by name.
func TestSerializeRegistry(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	data, err := SerializeRegistry(context.Background(), newRegistry(t), mem, nil)
	if err != nil {
		t.Fatalf("SerializeRegistry failed: %v", err)
	}

	entries, err := ReadSnapshot(data, mem)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	want := []SnapshotEntry{
		{Name: "arrow.uuid", Native: types.NewFixedSizeBinary(16).String(), Signature: "arrow.uuid"},
		{Name: "geoarrow.wkb", Native: types.Binary.String(), Signature: "geoarrow.wkb"},
		{
			Name:      "int_or_float",
			Native:    extensions.NewIntOrFloatType().Native().String(),
			Signature: "int_or_float",
			Ordering:  extensions.IntOrFloatOrderingID,
		},
	}
	for i, e := range entries {
		if e != want[i] {
			t.Errorf("Entry %d = %+v, want %+v", i, e, want[i])
		}
	}
}

func TestSerializeEmptyRegistry(t *testing.T) {
	mem := memory.NewCheckedAllocator(memory.NewGoAllocator())
	defer mem.AssertSize(t, 0)

	data, err := SerializeRegistry(context.Background(), registry.NewMemoryRegistry(), mem, nil)
	if err != nil {
		t.Fatalf("SerializeRegistry failed: %v", err)
	}
	entries, err := ReadSnapshot(data, mem)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no entries, got %d", len(entries))
	}
}

// TestSnapshotCompression tests the compress/decompress round trip.
func TestSnapshotCompression(t *testing.T) {
	data, err := SerializeRegistry(context.Background(), newRegistry(t), memory.DefaultAllocator, nil)
	if err != nil {
		t.Fatalf("SerializeRegistry failed: %v", err)
	}
	compressed, err := CompressSnapshot(data)
	if err != nil {
		t.Fatalf("CompressSnapshot failed: %v", err)
	}
	if len(compressed) == 0 {
		t.Fatal("Expected non-empty compressed data")
	}
	restored, err := DecompressSnapshot(compressed)
	if err != nil {
		t.Fatalf("DecompressSnapshot failed: %v", err)
	}
	if string(restored) != string(data) {
		t.Error("Expected decompressed data to match the original")
	}
	t.Logf("Compressed size: %d bytes from %d", len(compressed), len(data))
}

func TestSerializeContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := SerializeRegistry(ctx, newRegistry(t), memory.DefaultAllocator, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestReadSnapshotRejectsGarbage(t *testing.T) {
	if _, err := ReadSnapshot([]byte("not arrow"), memory.DefaultAllocator); err == nil {
		t.Error("Expected error for invalid stream")
	}
}

func TestCompressorEmptyInput(t *testing.T) {
	c, err := NewCompressor()
	if err != nil {
		t.Fatalf("NewCompressor failed: %v", err)
	}
	defer c.Close()
	if out := c.Compress(nil, nil); len(out) != 0 {
		t.Errorf("Expected empty output, got %d bytes", len(out))
	}
}

// reversedRegistry lists types in descending name order.
type reversedRegistry struct {
	*registry.MemoryRegistry
}

func (r reversedRegistry) AllTypes() []types.LogicalType {
	all := r.MemoryRegistry.AllTypes()
	slices.Reverse(all)
	return all
}

// TestSerializeRegistrySortsEntries tests that entries are sorted even when
// the registry does not list them in order.
func TestSerializeRegistrySortsEntries(t *testing.T) {
	data, err := SerializeRegistry(context.Background(), reversedRegistry{newRegistry(t)}, memory.DefaultAllocator, nil)
	if err != nil {
		t.Fatalf("SerializeRegistry failed: %v", err)
	}
	entries, err := ReadSnapshot(data, memory.DefaultAllocator)
	if err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}

	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if !slices.IsSorted(names) || len(names) != 3 {
		t.Errorf("Expected 3 sorted names, got %v", names)
	}
}

type panickyPlanningType struct{}

func (panickyPlanningType) Native() *types.NativeType { return types.Int64 }

func (panickyPlanningType) Signature() types.TypeSignature {
	return types.ExtensionSignature("test.panicky_planning")
}

func (panickyPlanningType) PlanningInformation() types.PlanningInformation {
	panic("planning information unavailable")
}

// TestSerializeRegistryRecoversPanics tests that a panicking type fails the
// snapshot with ErrInternal.
func TestSerializeRegistryRecoversPanics(t *testing.T) {
	reg := newRegistry(t)
	if _, err := reg.Register(panickyPlanningType{}); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	_, err := SerializeRegistry(context.Background(), reg, memory.DefaultAllocator, logger)
	if !errors.Is(err, types.ErrInternal) {
		t.Fatalf("Expected ErrInternal, got %v", err)
	}
	if logs.Len() == 0 {
		t.Error("Expected the panic to be logged")
	}
}
