package osm2net

import (
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
)

var (
	ErrIndexOutOfRange = errors.New("node index out of range")
	ErrMissingNodes    = errors.New("referenced nodes are missing")
)

// MissingNodesPolicy tells geometry extraction what to do with nodes absent in node store
type MissingNodesPolicy uint16

const (
	MISSING_NODES_SALVAGE = MissingNodesPolicy(iota)
	MISSING_NODES_ABORT
)

func (iotaIdx MissingNodesPolicy) String() string {
	return [...]string{"salvage", "abort"}[iotaIdx]
}

// ParseMissingNodesPolicy returns policy for its name
func ParseMissingNodesPolicy(name string) (MissingNodesPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "salvage", "":
		return MISSING_NODES_SALVAGE, nil
	case "abort":
		return MISSING_NODES_ABORT, nil
	default:
		return MISSING_NODES_SALVAGE, errors.Errorf("Unknown missing nodes policy '%s'", name)
	}
}

// rangeIndices returns indices from start to end inclusive. When end < start the range wraps around the sequence end;
// closed sequences (first id equals last one) skip the duplicated closing position
func rangeIndices(nodeIDs []osm.NodeID, start, end int) ([]int, error) {
	n := len(nodeIDs)
	if start < 0 || start >= n || end < 0 || end >= n {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "range [%d, %d] for %d nodes", start, end, n)
	}
	if start == end {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "empty range [%d, %d]", start, end)
	}
	if start < end {
		indices := make([]int, 0, end-start+1)
		for i := start; i <= end; i++ {
			indices = append(indices, i)
		}
		return indices, nil
	}
	last := n - 1
	if n > 1 && nodeIDs[0] == nodeIDs[n-1] {
		last = n - 2
	}
	if start > last {
		return nil, errors.Wrapf(ErrIndexOutOfRange, "wraparound start %d is the closing position", start)
	}
	indices := make([]int, 0, n)
	for i := start; i <= last; i++ {
		indices = append(indices, i)
	}
	for i := 0; i <= end; i++ {
		indices = append(indices, i)
	}
	return indices, nil
}

// ExtractedGeometry is outcome of geometry extraction. Geom is orb.LineString, orb.Polygon, orb.Point or nil.
// OSMNodeIDs lists nodes the geometry has been built from
type ExtractedGeometry struct {
	Geom       orb.Geometry
	OSMNodeIDs []osm.NodeID
	Missing    []osm.NodeID
}

// Salvaged checks if some nodes have been dropped
func (extracted ExtractedGeometry) Salvaged() bool {
	return len(extracted.Missing) > 0
}

// ExtractGeometry builds geometry from node sequence. Line is expected unless area is set.
// Missing nodes are collected; with MISSING_NODES_ABORT any missing node is an error, otherwise
// geometry degrades: line (>= 2 points) or polygon (closable ring), then point, then nothing
func ExtractGeometry(nodeIDs []osm.NodeID, store NodeStore, policy MissingNodesPolicy, area bool) (ExtractedGeometry, error) {
	extracted := ExtractedGeometry{
		OSMNodeIDs: make([]osm.NodeID, 0, len(nodeIDs)),
	}
	points := make([]orb.Point, 0, len(nodeIDs))
	for _, id := range nodeIDs {
		node, ok := store.Get(id)
		if !ok {
			extracted.Missing = append(extracted.Missing, id)
			continue
		}
		points = append(points, node.Point())
		extracted.OSMNodeIDs = append(extracted.OSMNodeIDs, id)
	}
	if len(extracted.Missing) > 0 && policy == MISSING_NODES_ABORT {
		return extracted, errors.Wrapf(ErrMissingNodes, "%d of %d nodes", len(extracted.Missing), len(nodeIDs))
	}
	if area {
		if polygon, ok := closePolygon(points); ok {
			extracted.Geom = polygon
			return extracted, nil
		}
	} else if len(points) >= 2 {
		extracted.Geom = orb.LineString(points)
		return extracted, nil
	}
	if len(points) >= 1 {
		extracted.Geom = points[0]
		extracted.OSMNodeIDs = extracted.OSMNodeIDs[:1]
		return extracted, nil
	}
	extracted.OSMNodeIDs = extracted.OSMNodeIDs[:0]
	return extracted, nil
}

// closePolygon closes the ring if needed. Valid ring has at least 4 points and 3 distinct ones
func closePolygon(points []orb.Point) (orb.Polygon, bool) {
	ring := make(orb.Ring, len(points), len(points)+1)
	copy(ring, points)
	if len(ring) > 0 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	if len(ring) < 4 {
		return nil, false
	}
	distinct := make(map[orb.Point]struct{}, len(ring))
	for _, pt := range ring {
		distinct[pt] = struct{}{}
	}
	if len(distinct) < 3 {
		return nil, false
	}
	return orb.Polygon{ring}, true
}
