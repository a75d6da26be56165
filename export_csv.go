package osm2net

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/pkg/errors"
)

// ExportToCSV writes network into three files. E.g. for 'map.csv': 'map_nodes.csv', 'map_links.csv', 'map_link_segments.csv'
func (network *Network) ExportToCSV(fname string, format GeomFormat) error {
	fnameParts := strings.Split(fname, ".csv")
	fnameNodes := fnameParts[0] + "_nodes.csv"
	fnameLinks := fnameParts[0] + "_links.csv"
	fnameSegments := fnameParts[0] + "_link_segments.csv"

	err := network.exportNodesToCSV(fnameNodes, format)
	if err != nil {
		return errors.Wrap(err, "Can't export nodes")
	}

	err = network.exportLinksToCSV(fnameLinks, format)
	if err != nil {
		return errors.Wrap(err, "Can't export links")
	}

	err = network.exportSegmentsToCSV(fnameSegments)
	if err != nil {
		return errors.Wrap(err, "Can't export link segments")
	}

	return nil
}

func createCSV(fname string) (*os.File, *csv.Writer, error) {
	file, err := os.Create(fname)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't create file")
	}
	writer := csv.NewWriter(file)
	writer.Comma = ';'
	return file, writer, nil
}

func (network *Network) exportNodesToCSV(fname string, format GeomFormat) error {
	file, writer, err := createCSV(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()

	err = writer.Write([]string{"id", "osm_node_id", "degree", "activity_type", "activity_link_type", "boundary_type", "longitude", "latitude", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, node := range network.Nodes() {
		if node.Degree() == 0 {
			continue
		}
		activity := network.NodeActivity(node.ID)
		err = writer.Write([]string{
			fmt.Sprintf("%d", node.ID),
			fmt.Sprintf("%d", node.OSMNodeID),
			fmt.Sprintf("%d", node.Degree()),
			activity.ActivityType.String(),
			activity.ActivityLinkType.String(),
			activity.BoundaryType.String(),
			fmt.Sprintf("%f", node.Geom.Lon()),
			fmt.Sprintf("%f", node.Geom.Lat()),
			prepareGeometry(node.Geom, format),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write node")
		}
	}
	return nil
}

func (network *Network) exportLinksToCSV(fname string, format GeomFormat) error {
	file, writer, err := createCSV(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()

	err = writer.Write([]string{"id", "source_node", "target_node", "osm_way_id", "forward_segment", "backward_segment", "length_meters", "name", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, link := range network.Links() {
		err = writer.Write([]string{
			fmt.Sprintf("%d", link.ID),
			fmt.Sprintf("%d", link.SourceNodeID),
			fmt.Sprintf("%d", link.TargetNodeID),
			fmt.Sprintf("%d", link.OSMWayID),
			fmt.Sprintf("%d", link.SegmentID(DIRECTION_FORWARD)),
			fmt.Sprintf("%d", link.SegmentID(DIRECTION_BACKWARD)),
			fmt.Sprintf("%f", link.LengthMeters),
			link.Name,
			prepareGeometry(link.Geom, format),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write link")
		}
	}
	return nil
}

func (network *Network) exportSegmentsToCSV(fname string) error {
	file, writer, err := createCSV(fname)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()

	err = writer.Write([]string{"id", "link_id", "direction", "from_node", "to_node", "osm_way_id", "modes", "lanes", "speed_kmh", "capacity", "max_density", "template", "link_type", "link_class", "is_link"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}

	for _, segment := range network.LinkSegments() {
		link := network.links[segment.LinkID]
		from, to := link.SourceNodeID, link.TargetNodeID
		if segment.Direction == DIRECTION_BACKWARD {
			from, to = to, from
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", segment.ID),
			fmt.Sprintf("%d", segment.LinkID),
			segment.Direction.String(),
			fmt.Sprintf("%d", from),
			fmt.Sprintf("%d", to),
			fmt.Sprintf("%d", segment.OSMWayID),
			segment.Modes.String(),
			fmt.Sprintf("%d", segment.Lanes),
			fmt.Sprintf("%f", segment.SpeedKmh),
			fmt.Sprintf("%f", segment.Capacity()),
			fmt.Sprintf("%f", segment.MaxDensity()),
			segment.Template.Key,
			segment.Template.LinkType.String(),
			segment.Template.LinkClass.String(),
			segment.Template.LinkConnectionType.String(),
		})
		if err != nil {
			return errors.Wrap(err, "Can't write link segment")
		}
	}
	return nil
}
