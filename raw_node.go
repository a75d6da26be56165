package osm2net

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
)

// RawNode is OSM node as it comes from the reader
type RawNode struct {
	ID  osm.NodeID
	Lon float64
	Lat float64
}

func (node RawNode) Point() orb.Point {
	return orb.Point{node.Lon, node.Lat}
}

// NodeStore is lookup of raw nodes by OSM identifier
type NodeStore map[osm.NodeID]RawNode

func (store NodeStore) Add(node RawNode) {
	store[node.ID] = node
}

func (store NodeStore) Get(id osm.NodeID) (RawNode, bool) {
	node, ok := store[id]
	return node, ok
}
