package extensions

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/apache/arrow-go/v18/arrow"
	"github.com/apache/arrow-go/v18/arrow/array"
	"github.com/apache/arrow-go/v18/arrow/scalar"
	"github.com/goccy/go-json"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
	"github.com/paulmach/orb/encoding/wkt"

	"github.com/hugr-lab/datatypes/types"
)

// GeometryExtensionName identifies WKB geometries, compatible with GeoArrow
// and the DuckDB spatial extension.
const GeometryExtensionName = "geoarrow.wkb"

// GeometryExtensionType is the Arrow extension data type for WKB geometries
// stored in Binary or LargeBinary columns.
type GeometryExtensionType struct {
	arrow.ExtensionBase
}

// NewGeometryExtensionType creates a geometry extension type over Binary.
func NewGeometryExtensionType() *GeometryExtensionType {
	return &GeometryExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: arrow.BinaryTypes.Binary},
	}
}

// GeometryArray is the array type of GeometryExtensionType.
type GeometryArray struct {
	array.ExtensionArrayBase
}

func (*GeometryExtensionType) ArrayType() reflect.Type {
	return reflect.TypeOf(GeometryArray{})
}

func (*GeometryExtensionType) ExtensionName() string { return GeometryExtensionName }

func (*GeometryExtensionType) String() string { return "extension<" + GeometryExtensionName + ">" }

// Serialize returns the extension metadata, empty for plain WKB.
func (*GeometryExtensionType) Serialize() string { return "" }

func (*GeometryExtensionType) Deserialize(storageType arrow.DataType, data string) (arrow.ExtensionType, error) {
	if !arrow.TypeEqual(storageType, arrow.BinaryTypes.Binary) &&
		!arrow.TypeEqual(storageType, arrow.BinaryTypes.LargeBinary) {
		return nil, fmt.Errorf("invalid storage type for geometry: %s (expected Binary or LargeBinary)", storageType)
	}
	return &GeometryExtensionType{
		ExtensionBase: arrow.ExtensionBase{Storage: storageType},
	}, nil
}

func (g *GeometryExtensionType) ExtensionEquals(other arrow.ExtensionType) bool {
	o, ok := other.(*GeometryExtensionType)
	if !ok {
		return false
	}
	return arrow.TypeEqual(g.StorageType(), o.StorageType())
}

// GeometryType is the logical type of WKB geometries. Values render as WKT.
type GeometryType struct{}

func NewGeometryType() *GeometryType { return &GeometryType{} }

func (*GeometryType) Native() *types.NativeType { return types.Binary }

func (*GeometryType) Signature() types.TypeSignature {
	return types.ExtensionSignature(GeometryExtensionName)
}

func (*GeometryType) PrettyPrinter() types.ValuePrettyPrinter { return WKTPrettyPrinter{} }

// DefaultCastFor keeps binary storage and rejects everything else; there is
// no implicit conversion from text to WKB.
func (*GeometryType) DefaultCastFor(origin arrow.DataType) (arrow.DataType, error) {
	if types.Binary.Represents(origin) {
		return origin, nil
	}
	if origin.ID() == arrow.NULL {
		return arrow.BinaryTypes.Binary, nil
	}
	return nil, types.NewError(types.ErrTypeMismatch, "logical type", GeometryExtensionName,
		"no default cast from %s", origin)
}

func (*GeometryType) String() string { return GeometryExtensionName }

// WKTPrettyPrinter renders WKB payloads as WKT.
type WKTPrettyPrinter struct{}

func (WKTPrettyPrinter) PrettyPrintScalar(value scalar.Scalar) (string, error) {
	if !value.IsValid() {
		return "null", nil
	}
	payload, err := types.BinaryPayload(value)
	if err != nil {
		return "", err
	}
	geom, err := DecodeGeometry(payload)
	if err != nil {
		return "", types.WrapError(types.ErrTypeMismatch, "logical type", GeometryExtensionName, err)
	}
	return wkt.MarshalString(geom), nil
}

// GeometryMetadata describes CRS and encoding of a geometry column. It is
// stored as JSON in the ARROW:extension:metadata field metadata.
type GeometryMetadata struct {
	// CRS is the coordinate reference system (PROJJSON).
	CRS *CRS `json:"crs,omitempty"`

	// Encoding is the geometry encoding, "WKB" by default.
	Encoding string `json:"encoding,omitempty"`

	// GeometryTypes restricts the allowed geometry types. Empty allows all.
	GeometryTypes []string `json:"geometry_types,omitempty"`

	// Edges is "planar" or "spherical".
	Edges string `json:"edges,omitempty"`

	// BBox is [minx, miny, maxx, maxy].
	BBox []float64 `json:"bbox,omitempty"`
}

// CRS is a simplified PROJJSON coordinate reference system.
type CRS struct {
	ID   *CRSID `json:"id,omitempty"`
	Name string `json:"name,omitempty"`
	Type string `json:"type,omitempty"`
}

// CRSID identifies a CRS, typically by EPSG code.
type CRSID struct {
	Authority string `json:"authority"`
	Code      int    `json:"code"`
}

// NewGeometryField creates a geometry field carrying CRS metadata.
func NewGeometryField(name string, nullable bool, srid int, geomType string) arrow.Field {
	extType := NewGeometryExtensionType()

	md := &GeometryMetadata{
		CRS:      &CRS{ID: &CRSID{Authority: "EPSG", Code: srid}},
		Encoding: "WKB",
	}
	if geomType != "" && geomType != "GEOMETRY" {
		md.GeometryTypes = []string{geomType}
	}
	mdJSON, _ := json.Marshal(md)

	return arrow.Field{
		Name:     name,
		Type:     extType,
		Nullable: nullable,
		Metadata: arrow.MetadataFrom(map[string]string{
			types.ExtensionNameKey:     GeometryExtensionName,
			"ARROW:extension:metadata": string(mdJSON),
			"srid":                     strconv.Itoa(srid),
			"geometry_type":            geomType,
			"dimension":                "XY",
		}),
	}
}

// GeometryMetadataOf parses the geometry metadata of a field.
func GeometryMetadataOf(field arrow.Field) (*GeometryMetadata, error) {
	raw, ok := field.Metadata.GetValue("ARROW:extension:metadata")
	if !ok || raw == "" {
		return &GeometryMetadata{Encoding: "WKB"}, nil
	}
	var md GeometryMetadata
	if err := json.Unmarshal([]byte(raw), &md); err != nil {
		return nil, fmt.Errorf("parse geometry metadata of %q: %w", field.Name, err)
	}
	return &md, nil
}

// EncodeGeometry converts a geometry to WKB.
func EncodeGeometry(geom orb.Geometry) ([]byte, error) {
	if geom == nil {
		return nil, fmt.Errorf("cannot encode nil geometry")
	}
	return wkb.Marshal(geom)
}

// DecodeGeometry parses WKB.
func DecodeGeometry(b []byte) (orb.Geometry, error) {
	if len(b) == 0 {
		return nil, fmt.Errorf("cannot decode empty WKB data")
	}
	return wkb.Unmarshal(b)
}

// ValidateGeometry checks that a geometry can be stored as WKB.
func ValidateGeometry(geom orb.Geometry) error {
	if geom == nil {
		return fmt.Errorf("geometry is nil")
	}

	switch g := geom.(type) {
	case orb.Point:
		return nil
	case orb.MultiPoint:
		if len(g) == 0 {
			return fmt.Errorf("multipoint is empty")
		}
		return nil
	case orb.LineString:
		if len(g) < 2 {
			return fmt.Errorf("linestring must have at least 2 points, has %d", len(g))
		}
		return nil
	case orb.MultiLineString:
		if len(g) == 0 {
			return fmt.Errorf("multilinestring is empty")
		}
		for i, ls := range g {
			if len(ls) < 2 {
				return fmt.Errorf("multilinestring[%d] must have at least 2 points, has %d", i, len(ls))
			}
		}
		return nil
	case orb.Polygon:
		if len(g) == 0 {
			return fmt.Errorf("polygon has no rings")
		}
		for i, ring := range g {
			if err := validateRing(ring); err != nil {
				if i == 0 {
					return fmt.Errorf("polygon outer ring %w", err)
				}
				return fmt.Errorf("polygon hole[%d] %w", i-1, err)
			}
		}
		return nil
	case orb.MultiPolygon:
		if len(g) == 0 {
			return fmt.Errorf("multipolygon is empty")
		}
		for i, poly := range g {
			if err := ValidateGeometry(poly); err != nil {
				return fmt.Errorf("multipolygon[%d]: %w", i, err)
			}
		}
		return nil
	case orb.Collection:
		if len(g) == 0 {
			return fmt.Errorf("geometry collection is empty")
		}
		for i, geom := range g {
			if err := ValidateGeometry(geom); err != nil {
				return fmt.Errorf("collection[%d]: %w", i, err)
			}
		}
		return nil
	case orb.Bound:
		return fmt.Errorf("bounds cannot be directly stored as WKB (convert to polygon)")
	default:
		return fmt.Errorf("unknown geometry type: %T", geom)
	}
}

func validateRing(ring orb.Ring) error {
	if len(ring) < 4 {
		return fmt.Errorf("must have at least 4 points, has %d", len(ring))
	}
	if !ring[0].Equal(ring[len(ring)-1]) {
		return fmt.Errorf("is not closed")
	}
	return nil
}

// GeometryTypeName returns the WKB type name of a geometry.
func GeometryTypeName(geom orb.Geometry) string {
	switch geom.(type) {
	case orb.Point:
		return "Point"
	case orb.MultiPoint:
		return "MultiPoint"
	case orb.LineString:
		return "LineString"
	case orb.MultiLineString:
		return "MultiLineString"
	case orb.Polygon:
		return "Polygon"
	case orb.MultiPolygon:
		return "MultiPolygon"
	case orb.Collection:
		return "GeometryCollection"
	case orb.Bound:
		return "Bound"
	default:
		return "Unknown"
	}
}

func init() {
	_ = arrow.RegisterExtensionType(NewGeometryExtensionType())
}

var (
	_ types.LogicalType     = (*GeometryType)(nil)
	_ types.PrettyPrintable = (*GeometryType)(nil)
	_ arrow.ExtensionType   = (*GeometryExtensionType)(nil)
)
