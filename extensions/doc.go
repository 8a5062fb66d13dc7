// Package extensions provides extension logical types beyond the canonical
// Arrow ones: a tagged int-or-float union with a custom ordering and a WKB
// geometry type rendered as WKT.
//
// Register them with a registry to make schema resolution pick them up:
//
//	reg, err := registry.NewMemoryRegistryWithTypes(
//		extensions.NewIntOrFloatType(),
//		extensions.NewGeometryType(),
//	)
package extensions
