// Package datatypes is a logical type layer over Apache Arrow.
//
// Arrow describes how values are stored; this module describes what they
// mean. Several storage types can carry the same logical type (String is
// Utf8, LargeUtf8 or Utf8View), and extension types such as arrow.uuid or
// geoarrow.wkb add meaning on top of a storage type.
//
// # Packages
//
//   - types: native types, the LogicalType capability, DFType and typed
//     scalars, orderings and pretty printers.
//   - logical: logical scalar values and conversion from Arrow scalars.
//   - registry: extension type registry and field resolution.
//   - ordering: natural and custom row comparators.
//   - extensions: int_or_float and geoarrow.wkb extension types.
//   - duckdb: DuckDB type names and SQL literals for logical values.
//   - interchange: MessagePack encoding of scalars, fields and types.
//
// # Quick Start
//
//	reg, err := datatypes.NewRegistryBuilder().
//	    Canonical().
//	    Type(extensions.NewIntOrFloatType()).
//	    Build()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ts, err := datatypes.NewTypeSystem(datatypes.Config{Registry: reg})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	dfTypes, err := ts.ResolveSchema(record.Schema())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for i, df := range dfTypes {
//	    idx, err := ts.SortIndices(df.LogicalType(), record.Column(i), types.SortOptions{})
//	    ...
//	}
//
// # Errors
//
// Errors wrap the sentinels in package types (ErrNotFound, ErrTypeMismatch,
// ...) and can be tested with errors.Is. ToStatus converts them to gRPC
// status errors.
package datatypes
