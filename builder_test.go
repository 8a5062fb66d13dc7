package datatypes

import (
	"errors"
	"testing"

	"github.com/hugr-lab/datatypes/extensions"
	"github.com/hugr-lab/datatypes/types"
)

// TestRegistryBuilderBasic tests basic registry building functionality.
func TestRegistryBuilderBasic(t *testing.T) {
	reg, err := NewRegistryBuilder().
		Canonical().
		Type(extensions.NewIntOrFloatType()).
		Types(extensions.NewGeometryType()).
		Build()
	if err != nil {
		t.Fatalf("Expected successful build, got error: %v", err)
	}

	for _, name := range []string{types.UuidExtensionName, extensions.IntOrFloatExtensionName, extensions.GeometryExtensionName} {
		if _, err := reg.Get(name); err != nil {
			t.Errorf("Expected %s to be registered, got error: %v", name, err)
		}
	}
	if n := len(reg.AllTypes()); n != 3 {
		t.Errorf("Expected 3 types, got %d", n)
	}
}

// TestRegistryBuilderDuplicate tests that duplicate names are rejected.
func TestRegistryBuilderDuplicate(t *testing.T) {
	_, err := NewRegistryBuilder().
		Type(extensions.NewIntOrFloatType()).
		Type(extensions.NewIntOrFloatType()).
		Build()
	if !errors.Is(err, types.ErrInvalidRegistration) {
		t.Errorf("Expected ErrInvalidRegistration, got %v", err)
	}
}

// TestRegistryBuilderNative tests that native types are rejected.
func TestRegistryBuilderNative(t *testing.T) {
	_, err := NewRegistryBuilder().Type(types.Int64).Build()
	if !errors.Is(err, types.ErrInvalidRegistration) {
		t.Errorf("Expected ErrInvalidRegistration, got %v", err)
	}
}

func TestRegistryBuilderNil(t *testing.T) {
	if _, err := NewRegistryBuilder().Type(nil).Build(); err == nil {
		t.Error("Expected error for nil type")
	}
}

// TestRegistryBuilderBuildOnce tests that Build can only be called once.
func TestRegistryBuilderBuildOnce(t *testing.T) {
	b := NewRegistryBuilder().Canonical()
	if _, err := b.Build(); err != nil {
		t.Fatalf("Expected first build to succeed, got error: %v", err)
	}
	if _, err := b.Build(); !errors.Is(err, ErrAlreadyBuilt) {
		t.Errorf("Expected ErrAlreadyBuilt, got %v", err)
	}
}

func TestRegistryBuilderEmpty(t *testing.T) {
	reg, err := NewRegistryBuilder().Build()
	if err != nil {
		t.Fatalf("Expected successful build, got error: %v", err)
	}
	if len(reg.AllTypes()) != 0 {
		t.Error("Expected empty registry")
	}
}
