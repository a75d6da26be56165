package osm2net

import (
	"fmt"
	"strings"

	"github.com/LdDl/ch"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// CostType is weight kind of contraction hierarchies edges
type CostType uint16

const (
	COST_SECONDS = CostType(iota + 1)
	COST_METERS
	COST_UNDEFINED = CostType(0)
)

func (iotaIdx CostType) String() string {
	return [...]string{"undefined", "seconds", "meters"}[iotaIdx]
}

func ParseCostType(name string) CostType {
	switch strings.ToLower(name) {
	case "seconds", "s":
		return COST_SECONDS
	case "meters", "m":
		return COST_METERS
	default:
		return COST_UNDEFINED
	}
}

// segmentCost returns weight of segment for chosen cost type
func segmentCost(segment *LinkSegment, link *NetworkLink, cost CostType) float64 {
	if cost == COST_SECONDS {
		if seconds := segment.TravelTimeSeconds(link); seconds > 0 {
			return seconds
		}
	}
	return link.LengthMeters
}

// ContractionGraph builds directed graph where every link segment is an edge between network nodes
func (network *Network) ContractionGraph(cost CostType) (*ch.Graph, error) {
	graph := ch.Graph{}
	for _, segment := range network.LinkSegments() {
		link := network.links[segment.LinkID]
		source, target := int64(link.SourceNodeID), int64(link.TargetNodeID)
		if segment.Direction == DIRECTION_BACKWARD {
			source, target = target, source
		}
		err := graph.CreateVertex(source)
		if err != nil {
			return nil, errors.Wrap(err, "Can not create source vertex")
		}
		err = graph.CreateVertex(target)
		if err != nil {
			return nil, errors.Wrap(err, "Can not create target vertex")
		}
		err = graph.AddEdge(source, target, segmentCost(segment, link, cost))
		if err != nil {
			return nil, errors.Wrap(err, "Can not wrap source and target vertices as edge")
		}
	}
	return &graph, nil
}

// ExportToCH prepares graph of link segments and writes its vertices. When contract is set, contraction
// hierarchies are prepared and shortcuts are written too. E.g. for 'map.csv' files 'map_ch_vertices.csv'
// and 'map_ch_shortcuts.csv' are produced
func (network *Network) ExportToCH(fname string, format GeomFormat, cost CostType, contract bool, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	graph, err := network.ContractionGraph(cost)
	if err != nil {
		return errors.Wrap(err, "Can't prepare graph")
	}
	fnamePart := strings.Split(fname, ".csv")
	fnameVertices := fnamePart[0] + "_ch_vertices.csv"
	fnameShortcuts := fnamePart[0] + "_ch_shortcuts.csv"

	if contract {
		logger.Info("Starting contraction process", zap.Int("vertices", len(graph.Vertices)), zap.String("cost", cost.String()))
		graph.PrepareContractionHierarchies()
		logger.Info("Contraction process done")
	}

	file, writer, err := createCSV(fnameVertices)
	if err != nil {
		return err
	}
	defer file.Close()
	defer writer.Flush()
	err = writer.Write([]string{"vertex_id", "order_pos", "importance", "geom"})
	if err != nil {
		return errors.Wrap(err, "Can't write header")
	}
	for i := range graph.Vertices {
		label := graph.Vertices[i].Label
		var geom orb.Geometry
		if node, ok := network.Node(NetworkNodeID(label)); ok {
			geom = node.Geom
		}
		geomStr := ""
		if geom != nil {
			geomStr = prepareGeometry(geom, format)
		}
		err = writer.Write([]string{
			fmt.Sprintf("%d", label),
			fmt.Sprintf("%d", graph.Vertices[i].OrderPos()),
			fmt.Sprintf("%d", graph.Vertices[i].Importance()),
			geomStr,
		})
		if err != nil {
			return errors.Wrap(err, "Can't write vertex")
		}
	}

	if contract {
		// 	from_vertex_id;to_vertex_id;weight;via_vertex_id
		err = graph.ExportShortcutsToFile(fnameShortcuts)
		if err != nil {
			return errors.Wrap(err, "Can't export shortcuts")
		}
	}
	return nil
}
