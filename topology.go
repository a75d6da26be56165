package osm2net

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"go.uber.org/zap"
)

// TopologyCorrector breaks links at nodes shared with other links so every such node becomes a graph node
type TopologyCorrector struct {
	network *Network
	report  *Report
	logger  *zap.Logger
}

func NewTopologyCorrector(network *Network, report *Report, logger *zap.Logger) *TopologyCorrector {
	if report == nil {
		report = NewReport()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TopologyCorrector{
		network: network,
		report:  report,
		logger:  logger,
	}
}

// Correct runs both passes: endpoints used as shape points, then shape points shared by several links.
// Interior registrations are consumed, so repeated call does nothing
func (corrector *TopologyCorrector) Correct() {
	network := corrector.network
	// Nodes created while breaking are appended and checked as well
	for i := 0; i < len(network.nodes); i++ {
		node := network.nodes[i]
		if !node.HasOSMNode() || node.Degree() == 0 {
			continue
		}
		linkIDs, ok := network.interior[node.OSMNodeID]
		if !ok {
			continue
		}
		delete(network.interior, node.OSMNodeID)
		for _, linkID := range linkIDs {
			corrector.breakAt(linkID, node)
		}
	}
	for _, osmNodeID := range network.interiorNodesOrdered() {
		linkIDs := network.interior[osmNodeID]
		delete(network.interior, osmNodeID)
		if len(linkIDs) < 2 && !corrector.repeatedInside(linkIDs, osmNodeID) {
			continue
		}
		pt, ok := corrector.vertexPosition(linkIDs, osmNodeID)
		if !ok {
			corrector.report.SkippedBreaks++
			corrector.logger.Warn("Can't locate shared shape point", zap.Int64("osm_node_id", int64(osmNodeID)))
			continue
		}
		node := network.getOrCreateNode(osmNodeID, pt)
		for _, linkID := range linkIDs {
			corrector.breakAt(linkID, node)
		}
	}
}

// repeatedInside checks if single link passes the node more than once
func (corrector *TopologyCorrector) repeatedInside(linkIDs []NetworkLinkID, osmNodeID osm.NodeID) bool {
	for _, linkID := range linkIDs {
		link := corrector.network.links[linkID]
		if len(link.interiorIndices(osmNodeID)) > 1 {
			return true
		}
	}
	return false
}

// vertexPosition returns coordinates of OSM node taken from geometry of any link registered it
func (corrector *TopologyCorrector) vertexPosition(linkIDs []NetworkLinkID, osmNodeID osm.NodeID) (orb.Point, bool) {
	for _, linkID := range linkIDs {
		link := corrector.network.links[linkID]
		for i, id := range link.OSMNodeIDs {
			if id == osmNodeID {
				return link.Geom[i], true
			}
		}
	}
	return orb.Point{}, false
}

// resolveLink follows lineage of replaced link to active piece having the node's point among interior vertices.
// Second value is false when nothing has to be broken (node is already an endpoint of every piece containing it)
func (corrector *TopologyCorrector) resolveLink(linkID NetworkLinkID, node *NetworkNode) (*NetworkLink, bool, bool) {
	network := corrector.network
	queue := []NetworkLinkID{linkID}
	seenAsEndpoint := false
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		link := network.links[id]
		if !link.active {
			queue = append(queue, network.lineage[id]...)
			continue
		}
		if link.containsVertex(node.Geom) && len(link.interiorIndices(node.OSMNodeID)) > 0 {
			return link, true, true
		}
		if link.HasEndpoint(node.ID) {
			seenAsEndpoint = true
		}
	}
	return nil, false, seenAsEndpoint
}

// breakAt splits link at every interior occurrence of the node
func (corrector *TopologyCorrector) breakAt(linkID NetworkLinkID, node *NetworkNode) {
	link, ok, seenAsEndpoint := corrector.resolveLink(linkID, node)
	if !ok {
		if !seenAsEndpoint {
			corrector.report.SkippedBreaks++
			corrector.logger.Warn("Can't find link piece to break", zap.Int("link_id", int(linkID)), zap.Int64("osm_node_id", int64(node.OSMNodeID)))
		}
		return
	}
	cuts := link.interiorIndices(node.OSMNodeID)
	bounds := make([]int, 0, len(cuts)+2)
	bounds = append(bounds, 0)
	bounds = append(bounds, cuts...)
	bounds = append(bounds, len(link.OSMNodeIDs)-1)
	corrector.replace(link, bounds)
}

// replace substitutes link with pieces between consecutive bounds. Pieces starting and ending at
// the same node are split once more at their middle vertex
func (corrector *TopologyCorrector) replace(link *NetworkLink, bounds []int) {
	network := corrector.network
	pieces := make([]NetworkLinkID, 0, len(bounds))
	for i := 0; i+1 < len(bounds); i++ {
		from, to := bounds[i], bounds[i+1]
		if network.nodeIDAt(link, from) == network.nodeIDAt(link, to) {
			if to-from < 2 {
				corrector.logger.Debug("Degenerate link piece dropped", zap.Int("link_id", int(link.ID)))
				continue
			}
			middle := from + (to-from)/2
			pieces = append(pieces, corrector.piece(link, from, middle).ID, corrector.piece(link, middle, to).ID)
			continue
		}
		pieces = append(pieces, corrector.piece(link, from, to).ID)
	}
	network.deactivateLink(link, pieces)
	corrector.report.LinksBroken++
	corrector.logger.Debug("Link broken", zap.Int("link_id", int(link.ID)), zap.Int("pieces", len(pieces)))
}

// piece creates link for link's vertices [from, to] and copies its segments
func (corrector *TopologyCorrector) piece(link *NetworkLink, from, to int) *NetworkLink {
	network := corrector.network
	source := network.nodeAt(link, from)
	target := network.nodeAt(link, to)
	geom := make(orb.LineString, to-from+1)
	copy(geom, link.Geom[from:to+1])
	osmNodeIDs := make([]osm.NodeID, to-from+1)
	copy(osmNodeIDs, link.OSMNodeIDs[from:to+1])
	piece := network.addLink(source.ID, target.ID, link.OSMWayID, link.Name, geom, osmNodeIDs)
	for _, direction := range []DirectionType{DIRECTION_FORWARD, DIRECTION_BACKWARD} {
		segment, ok := network.Segment(link.SegmentID(direction))
		if !ok {
			continue
		}
		network.addSegment(piece, direction, DirectionalAttributes{
			Modes:    segment.Modes,
			SpeedKmh: segment.SpeedKmh,
			Lanes:    segment.Lanes,
		}, segment.Template)
		corrector.report.LinkSegments++
	}
	return piece
}

// nodeAt returns graph node at link's vertex, creating it for interior vertices
func (network *Network) nodeAt(link *NetworkLink, index int) *NetworkNode {
	switch index {
	case 0:
		return network.nodes[link.SourceNodeID]
	case len(link.OSMNodeIDs) - 1:
		return network.nodes[link.TargetNodeID]
	default:
		return network.getOrCreateNode(link.OSMNodeIDs[index], link.Geom[index])
	}
}

// nodeIDAt returns OSM node identifier at link's vertex
func (network *Network) nodeIDAt(link *NetworkLink, index int) osm.NodeID {
	return link.OSMNodeIDs[index]
}

// Correct runs topology correction over the network
func Correct(network *Network, report *Report, logger *zap.Logger) {
	NewTopologyCorrector(network, report, logger).Correct()
}
