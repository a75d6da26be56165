package osm2net

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

/* Nodes stuff */

type NetworkNodeID int

type NetworkNode struct {
	ID NetworkNodeID
	// Zero when node has no OSM origin
	OSMNodeID osm.NodeID
	Geom      orb.Point
	links     []NetworkLinkID
}

func (node *NetworkNode) HasOSMNode() bool {
	return node.OSMNodeID != 0
}

// LinkIDs returns identifiers of active links attached to the node
func (node *NetworkNode) LinkIDs() []NetworkLinkID {
	return node.links
}

// Degree returns number of active links attached to the node
func (node *NetworkNode) Degree() int {
	return len(node.links)
}

func (node *NetworkNode) attachLink(linkID NetworkLinkID) {
	node.links = append(node.links, linkID)
}

func (node *NetworkNode) detachLink(linkID NetworkLinkID) {
	for i := range node.links {
		if node.links[i] == linkID {
			node.links = append(node.links[:i], node.links[i+1:]...)
			return
		}
	}
}
