// Package duckdb bridges logical types and values to DuckDB.
//
// It maps logical types to DuckDB type descriptors and back, renders DuckDB
// SQL type names, and renders logical scalars as DuckDB SQL literals. Type
// descriptors use the JSON layout DuckDB produces when serializing logical
// types ({"id": ..., "type_info": ...}).
//
// Mapping notes:
//   - Float16 widens to FLOAT; FixedSizeBinary and Binary map to BLOB.
//   - Timestamps with a time zone map to TIMESTAMP WITH TIME ZONE
//     (microseconds, normalised to UTC).
//   - Durations map to INTERVAL.
//   - arrow.uuid maps to UUID; other extension types map by their native
//     type.
//   - Unions and decimals wider than 38 digits are not supported.
package duckdb
