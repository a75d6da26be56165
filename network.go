package osm2net

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

type nodePair struct {
	a NetworkNodeID
	b NetworkNodeID
}

func newNodePair(a, b NetworkNodeID) nodePair {
	if a > b {
		a, b = b, a
	}
	return nodePair{a, b}
}

// Network is arena of nodes, links and link segments addressed by dense identifiers.
// Replaced links stay in the arena inactive; lineage maps them to their replacements
type Network struct {
	nodes       []*NetworkNode
	links       []*NetworkLink
	segments    []*LinkSegment
	nodeByOSM   map[osm.NodeID]NetworkNodeID
	linksByPair map[nodePair][]NetworkLinkID
	lineage     map[NetworkLinkID][]NetworkLinkID
	// OSM nodes used as shape points of links
	interior map[osm.NodeID][]NetworkLinkID
}

func NewNetwork() *Network {
	return &Network{
		nodes:       make([]*NetworkNode, 0),
		links:       make([]*NetworkLink, 0),
		segments:    make([]*LinkSegment, 0),
		nodeByOSM:   make(map[osm.NodeID]NetworkNodeID),
		linksByPair: make(map[nodePair][]NetworkLinkID),
		lineage:     make(map[NetworkLinkID][]NetworkLinkID),
		interior:    make(map[osm.NodeID][]NetworkLinkID),
	}
}

// Nodes returns every node. Nodes are never removed
func (network *Network) Nodes() []*NetworkNode {
	return network.nodes
}

// Links returns active links ordered by ID
func (network *Network) Links() []*NetworkLink {
	links := make([]*NetworkLink, 0, len(network.links))
	for _, link := range network.links {
		if link.active {
			links = append(links, link)
		}
	}
	return links
}

// LinkSegments returns segments of active links ordered by ID
func (network *Network) LinkSegments() []*LinkSegment {
	segments := make([]*LinkSegment, 0, len(network.segments))
	for _, segment := range network.segments {
		if network.links[segment.LinkID].active {
			segments = append(segments, segment)
		}
	}
	return segments
}

func (network *Network) Node(id NetworkNodeID) (*NetworkNode, bool) {
	if id < 0 || int(id) >= len(network.nodes) {
		return nil, false
	}
	return network.nodes[id], true
}

// Link returns link by identifier, including replaced ones
func (network *Network) Link(id NetworkLinkID) (*NetworkLink, bool) {
	if id < 0 || int(id) >= len(network.links) {
		return nil, false
	}
	return network.links[id], true
}

func (network *Network) Segment(id LinkSegmentID) (*LinkSegment, bool) {
	if id < 0 || int(id) >= len(network.segments) {
		return nil, false
	}
	return network.segments[id], true
}

// NodeByOSM returns node created for OSM node
func (network *Network) NodeByOSM(osmNodeID osm.NodeID) (*NetworkNode, bool) {
	id, ok := network.nodeByOSM[osmNodeID]
	if !ok {
		return nil, false
	}
	return network.nodes[id], true
}

// Replacements returns identifiers of links which replaced the given one. Empty for active links
func (network *Network) Replacements(id NetworkLinkID) []NetworkLinkID {
	return network.lineage[id]
}

// IsInterior checks if OSM node is registered as shape point of some link
func (network *Network) IsInterior(osmNodeID osm.NodeID) bool {
	return len(network.interior[osmNodeID]) > 0
}

// getOrCreateNode returns node for OSM node, creating it at given position on first use
func (network *Network) getOrCreateNode(osmNodeID osm.NodeID, pt orb.Point) *NetworkNode {
	if id, ok := network.nodeByOSM[osmNodeID]; ok {
		return network.nodes[id]
	}
	node := &NetworkNode{
		ID:        NetworkNodeID(len(network.nodes)),
		OSMNodeID: osmNodeID,
		Geom:      pt,
		links:     make([]NetworkLinkID, 0, 2),
	}
	network.nodes = append(network.nodes, node)
	network.nodeByOSM[osmNodeID] = node.ID
	return node
}

// findLink returns active link between nodes with the same geometry in either orientation
func (network *Network) findLink(a, b NetworkNodeID, geom orb.LineString) (*NetworkLink, bool) {
	for _, id := range network.linksByPair[newNodePair(a, b)] {
		link := network.links[id]
		if link.active && link.sameGeometry(geom) {
			return link, true
		}
	}
	return nil, false
}

func (network *Network) addLink(sourceNodeID, targetNodeID NetworkNodeID, wayID osm.WayID, name string, geom orb.LineString, osmNodeIDs []osm.NodeID) *NetworkLink {
	link := newNetworkLink(NetworkLinkID(len(network.links)), sourceNodeID, targetNodeID, wayID, name, geom, osmNodeIDs)
	network.links = append(network.links, link)
	pair := newNodePair(sourceNodeID, targetNodeID)
	network.linksByPair[pair] = append(network.linksByPair[pair], link.ID)
	network.nodes[sourceNodeID].attachLink(link.ID)
	network.nodes[targetNodeID].attachLink(link.ID)
	return link
}

func (network *Network) addSegment(link *NetworkLink, direction DirectionType, attrs DirectionalAttributes, template *AttributeTemplate) *LinkSegment {
	segment := &LinkSegment{
		ID:        LinkSegmentID(len(network.segments)),
		LinkID:    link.ID,
		Direction: direction,
		Modes:     attrs.Modes,
		SpeedKmh:  attrs.SpeedKmh,
		Lanes:     attrs.Lanes,
		Template:  template,
		OSMWayID:  link.OSMWayID,
	}
	network.segments = append(network.segments, segment)
	link.setSegment(direction, segment.ID)
	return segment
}

// registerInterior marks OSM node as shape point of the link
func (network *Network) registerInterior(osmNodeID osm.NodeID, linkID NetworkLinkID) {
	for _, id := range network.interior[osmNodeID] {
		if id == linkID {
			return
		}
	}
	network.interior[osmNodeID] = append(network.interior[osmNodeID], linkID)
}

// interiorNodesOrdered returns registered shape points in ascending order
func (network *Network) interiorNodesOrdered() []osm.NodeID {
	ids := make([]osm.NodeID, 0, len(network.interior))
	for id := range network.interior {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// deactivateLink removes link from active set and remembers its replacements
func (network *Network) deactivateLink(link *NetworkLink, replacements []NetworkLinkID) {
	link.active = false
	network.lineage[link.ID] = replacements
	network.nodes[link.SourceNodeID].detachLink(link.ID)
	network.nodes[link.TargetNodeID].detachLink(link.ID)
	pair := newNodePair(link.SourceNodeID, link.TargetNodeID)
	ids := network.linksByPair[pair]
	for i := range ids {
		if ids[i] == link.ID {
			network.linksByPair[pair] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
}
