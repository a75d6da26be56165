package osm2net

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/osm"
)

/* Links stuff */
type NetworkLinkID int

const NO_SEGMENT = LinkSegmentID(-1)

// NetworkLink is undirected edge. Geom runs from source node to target node and its vertices
// correspond one-to-one to OSMNodeIDs
type NetworkLink struct {
	ID           NetworkLinkID
	SourceNodeID NetworkNodeID
	TargetNodeID NetworkNodeID
	OSMWayID     osm.WayID
	Name         string
	Geom         orb.LineString
	OSMNodeIDs   []osm.NodeID
	LengthMeters float64
	segments     [2]LinkSegmentID
	active       bool
}

func newNetworkLink(id NetworkLinkID, sourceNodeID, targetNodeID NetworkNodeID, wayID osm.WayID, name string, geom orb.LineString, osmNodeIDs []osm.NodeID) *NetworkLink {
	return &NetworkLink{
		ID:           id,
		SourceNodeID: sourceNodeID,
		TargetNodeID: targetNodeID,
		OSMWayID:     wayID,
		Name:         name,
		Geom:         geom,
		OSMNodeIDs:   osmNodeIDs,
		LengthMeters: geo.LengthHaversign(geom),
		segments:     [2]LinkSegmentID{NO_SEGMENT, NO_SEGMENT},
		active:       true,
	}
}

// IsActive returns false for links replaced during topology correction
func (link *NetworkLink) IsActive() bool {
	return link.active
}

// SegmentID returns segment of given direction or NO_SEGMENT
func (link *NetworkLink) SegmentID(direction DirectionType) LinkSegmentID {
	switch direction {
	case DIRECTION_FORWARD:
		return link.segments[0]
	case DIRECTION_BACKWARD:
		return link.segments[1]
	default:
		return NO_SEGMENT
	}
}

func (link *NetworkLink) setSegment(direction DirectionType, segmentID LinkSegmentID) {
	switch direction {
	case DIRECTION_FORWARD:
		link.segments[0] = segmentID
	case DIRECTION_BACKWARD:
		link.segments[1] = segmentID
	}
}

// HasEndpoint checks if node is source or target of the link
func (link *NetworkLink) HasEndpoint(nodeID NetworkNodeID) bool {
	return link.SourceNodeID == nodeID || link.TargetNodeID == nodeID
}

// interiorIndices returns positions of OSM node strictly inside the link
func (link *NetworkLink) interiorIndices(osmNodeID osm.NodeID) []int {
	indices := []int{}
	for i := 1; i < len(link.OSMNodeIDs)-1; i++ {
		if link.OSMNodeIDs[i] == osmNodeID {
			indices = append(indices, i)
		}
	}
	return indices
}

// containsVertex checks if point is one of the link's interior vertices
func (link *NetworkLink) containsVertex(pt orb.Point) bool {
	for i := 1; i < len(link.Geom)-1; i++ {
		if link.Geom[i].Equal(pt) {
			return true
		}
	}
	return false
}

// sameGeometry checks if geometries match in either orientation
func (link *NetworkLink) sameGeometry(geom orb.LineString) bool {
	if link.Geom.Equal(geom) {
		return true
	}
	reversed := geom.Clone()
	reversed.Reverse()
	return link.Geom.Equal(reversed)
}
