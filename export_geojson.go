package osm2net

import (
	"os"

	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

func lineCoordinates(line orb.LineString) [][]float64 {
	pts2d := make([][]float64, len(line))
	for i := range line {
		pts2d[i] = []float64{line[i].Lon(), line[i].Lat()}
	}
	return pts2d
}

// geojsonGeometry converts points and lines. Other geometries are not produced by the network
func geojsonGeometry(geom orb.Geometry) *geojson.Geometry {
	switch g := geom.(type) {
	case orb.Point:
		return geojson.NewPointGeometry([]float64{g.Lon(), g.Lat()})
	case orb.LineString:
		return geojson.NewLineStringGeometry(lineCoordinates(g))
	case orb.Polygon:
		rings := make([][][]float64, len(g))
		for i := range g {
			rings[i] = lineCoordinates(orb.LineString(g[i]))
		}
		return geojson.NewPolygonGeometry(rings)
	default:
		return nil
	}
}

// PrepareGeoJSON returns GeoJSON representation of geometry
func PrepareGeoJSON(geom orb.Geometry) string {
	prepared := geojsonGeometry(geom)
	if prepared == nil {
		return ""
	}
	b, err := prepared.MarshalJSON()
	if err != nil {
		return ""
	}
	return string(b)
}

// ExportToGeoJSON writes nodes and links with their segments as single FeatureCollection
func (network *Network) ExportToGeoJSON(fname string) error {
	collection := geojson.NewFeatureCollection()
	for _, node := range network.Nodes() {
		if node.Degree() == 0 {
			continue
		}
		feature := geojson.NewFeature(geojsonGeometry(node.Geom))
		feature.SetProperty("kind", "node")
		feature.SetProperty("id", int(node.ID))
		feature.SetProperty("osm_node_id", int64(node.OSMNodeID))
		activity := network.NodeActivity(node.ID)
		feature.SetProperty("activity_type", activity.ActivityType.String())
		feature.SetProperty("activity_link_type", activity.ActivityLinkType.String())
		feature.SetProperty("boundary_type", activity.BoundaryType.String())
		collection.AddFeature(feature)
	}
	for _, link := range network.Links() {
		feature := geojson.NewFeature(geojsonGeometry(link.Geom))
		feature.SetProperty("kind", "link")
		feature.SetProperty("id", int(link.ID))
		feature.SetProperty("source_node", int(link.SourceNodeID))
		feature.SetProperty("target_node", int(link.TargetNodeID))
		feature.SetProperty("osm_way_id", int64(link.OSMWayID))
		feature.SetProperty("length_meters", link.LengthMeters)
		feature.SetProperty("name", link.Name)
		for _, direction := range []DirectionType{DIRECTION_FORWARD, DIRECTION_BACKWARD} {
			segment, ok := network.Segment(link.SegmentID(direction))
			if !ok {
				continue
			}
			prefix := direction.String() + "_"
			feature.SetProperty(prefix+"modes", segment.Modes.String())
			feature.SetProperty(prefix+"lanes", segment.Lanes)
			feature.SetProperty(prefix+"speed_kmh", segment.SpeedKmh)
			feature.SetProperty(prefix+"capacity", segment.Capacity())
			feature.SetProperty(prefix+"template", segment.Template.Key)
		}
		collection.AddFeature(feature)
	}
	b, err := collection.MarshalJSON()
	if err != nil {
		return errors.Wrap(err, "Can't marshal feature collection")
	}
	err = os.WriteFile(fname, b, 0644)
	if err != nil {
		return errors.Wrap(err, "Can't write file")
	}
	return nil
}
