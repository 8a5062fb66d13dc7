package registry

import (
	"errors"
	"sync"
	"testing"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/extensions"

	"github.com/hugr-lab/datatypes/types"
)

// TestRegisterNativeFails tests that native types cannot be registered.
func TestRegisterNativeFails(t *testing.T) {
	r := NewMemoryRegistry()
	_, err := r.Register(types.Int32)
	if !errors.Is(err, types.ErrInvalidRegistration) {
		t.Fatalf("Expected ErrInvalidRegistration, got %v", err)
	}
	if _, err := NewMemoryRegistryWithTypes(types.NewUuidType(), types.String); !errors.Is(err, types.ErrInvalidRegistration) {
		t.Errorf("Expected ErrInvalidRegistration from constructor, got %v", err)
	}
}

// TestRegisterTwiceReturnsPrevious tests the upsert semantics of Register.
func TestRegisterTwiceReturnsPrevious(t *testing.T) {
	r := NewMemoryRegistry()
	first := types.NewUuidType()
	prev, err := r.Register(first)
	if err != nil {
		t.Fatalf("Expected registration to succeed, got error: %v", err)
	}
	if prev != nil {
		t.Errorf("Expected no previous type, got %v", prev)
	}

	second := types.NewUuidType()
	prev, err = r.Register(second)
	if err != nil {
		t.Fatalf("Expected registration to succeed, got error: %v", err)
	}
	if prev != first {
		t.Errorf("Expected the first registration back, got %v", prev)
	}
	got, _ := r.Get(types.UuidExtensionName)
	if got != second {
		t.Errorf("Expected the second registration to be current")
	}
}

// TestGetAfterDeregister tests that removed names are no longer found.
func TestGetAfterDeregister(t *testing.T) {
	r, err := NewMemoryRegistryWithTypes(types.NewUuidType())
	if err != nil {
		t.Fatalf("Expected registry creation to succeed, got error: %v", err)
	}
	if removed := r.Deregister(types.UuidExtensionName); removed == nil {
		t.Fatal("Expected the removed type")
	}
	_, err = r.Get(types.UuidExtensionName)
	if !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("Expected ErrNotFound, got %v", err)
	}
	var typed *types.Error
	if !errors.As(err, &typed) || typed.Name != types.UuidExtensionName {
		t.Errorf("Expected error to name the type, got %v", err)
	}
	if removed := r.Deregister(types.UuidExtensionName); removed != nil {
		t.Errorf("Expected nil for a second deregistration, got %v", removed)
	}
}

func TestAllTypesSnapshot(t *testing.T) {
	r, _ := NewMemoryRegistryWithTypes(
		types.NewUnknownExtensionType("b.type", types.Int8),
		types.NewUnknownExtensionType("a.type", types.Int8),
	)
	all := r.AllTypes()
	if len(all) != 2 {
		t.Fatalf("Expected 2 types, got %d", len(all))
	}
	if name, _ := types.ExtensionName(all[0]); name != "a.type" {
		t.Errorf("Expected a.type first, got %s", name)
	}
	r.Deregister("a.type")
	if len(all) != 2 {
		t.Error("Expected the snapshot to be unaffected by later changes")
	}
}

func TestConcurrentAccess(t *testing.T) {
	r := NewMemoryRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = r.Register(types.NewUuidType())
		}()
		go func() {
			defer wg.Done()
			_, _ = r.Get(types.UuidExtensionName)
			_ = r.AllTypes()
		}()
	}
	wg.Wait()
	if _, err := r.Get(types.UuidExtensionName); err != nil {
		t.Errorf("Expected uuid to be registered, got %v", err)
	}
}

func TestResolve(t *testing.T) {
	r, _ := NewMemoryRegistryWithTypes(types.NewUuidType())
	uuidMeta := arrow.NewMetadata([]string{types.ExtensionNameKey}, []string{types.UuidExtensionName})
	otherMeta := arrow.NewMetadata([]string{types.ExtensionNameKey}, []string{"acme.other"})

	tests := []struct {
		name        string
		field       arrow.Field
		wantSig     string
		wantUnknown bool
		wantErr     error
	}{
		{
			name:    "native",
			field:   arrow.Field{Name: "n", Type: arrow.PrimitiveTypes.Int64},
			wantSig: "Int64",
		},
		{
			name:    "metadata",
			field:   arrow.Field{Name: "id", Type: &arrow.FixedSizeBinaryType{ByteWidth: 16}, Metadata: uuidMeta},
			wantSig: types.UuidExtensionName,
		},
		{
			name:    "extension data type",
			field:   arrow.Field{Name: "id", Type: extensions.NewUUIDType()},
			wantSig: types.UuidExtensionName,
		},
		{
			name:        "unknown",
			field:       arrow.Field{Name: "x", Type: arrow.BinaryTypes.String, Metadata: otherMeta},
			wantSig:     "acme.other",
			wantUnknown: true,
		},
		{
			name:    "mismatched storage",
			field:   arrow.Field{Name: "id", Type: arrow.BinaryTypes.String, Metadata: uuidMeta},
			wantErr: types.ErrTypeMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			df, err := Resolve(r, tt.field)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Expected resolution to succeed, got error: %v", err)
			}
			if got := df.LogicalType().Signature().String(); got != tt.wantSig {
				t.Errorf("Expected signature %s, got %s", tt.wantSig, got)
			}
			if IsUnknown(df) != tt.wantUnknown {
				t.Errorf("Expected IsUnknown = %v", tt.wantUnknown)
			}
		})
	}
}

func TestResolveSchema(t *testing.T) {
	schema := arrow.NewSchema([]arrow.Field{
		{Name: "a", Type: arrow.PrimitiveTypes.Int32},
		{Name: "b", Type: arrow.BinaryTypes.LargeString},
	}, nil)
	dfs, err := ResolveSchema(NewMemoryRegistry(), schema)
	if err != nil {
		t.Fatalf("Expected resolution to succeed, got error: %v", err)
	}
	if len(dfs) != 2 || !types.TypesEqual(dfs[1].LogicalType(), types.String) {
		t.Errorf("Unexpected result %v", dfs)
	}
}
