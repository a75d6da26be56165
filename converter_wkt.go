package osm2net

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkt"
)

// GeomFormat is textual representation of geometries in exported files
type GeomFormat uint16

const (
	GEOM_FORMAT_WKT = GeomFormat(iota + 1)
	GEOM_FORMAT_GEOJSON
	GEOM_FORMAT_UNDEFINED = GeomFormat(0)
)

func (iotaIdx GeomFormat) String() string {
	return [...]string{"undefined", "wkt", "geojson"}[iotaIdx]
}

// ParseGeomFormat returns format for its name. WKT is used for unknown names
func ParseGeomFormat(name string) GeomFormat {
	if strings.ToLower(strings.TrimSpace(name)) == "geojson" {
		return GEOM_FORMAT_GEOJSON
	}
	return GEOM_FORMAT_WKT
}

// PrepareWKT returns WKT representation of geometry
func PrepareWKT(geom orb.Geometry) string {
	return wkt.MarshalString(geom)
}

func prepareGeometry(geom orb.Geometry, format GeomFormat) string {
	if format == GEOM_FORMAT_GEOJSON {
		return PrepareGeoJSON(geom)
	}
	return PrepareWKT(geom)
}
