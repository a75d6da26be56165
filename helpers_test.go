package osm2net

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/require"
)

// gridNode places node on a regular grid with ~100m step
func gridNode(id osm.NodeID, x, y float64) RawNode {
	return RawNode{
		ID:  id,
		Lon: 13.4 + x*0.001,
		Lat: 52.5 + y*0.001,
	}
}

func newTestWay(id osm.WayID, tags map[string]string, nodeIDs ...osm.NodeID) RawWay {
	return RawWay{
		ID:    id,
		Nodes: nodeIDs,
		Tags:  tags,
	}
}

func newTestBuilder(side DrivingSide, policy MissingNodesPolicy, nodes ...RawNode) *Builder {
	store := make(NodeStore)
	for _, node := range nodes {
		store.Add(node)
	}
	report := NewReport()
	catalog := NewCatalog(nil)
	engine := NewRuleEngine(nil, report, nil)
	return NewBuilder(NewNetwork(), catalog, engine, store, side, policy, report, nil)
}

func mustTemplate(t *testing.T, catalog *Catalog, key string) *AttributeTemplate {
	t.Helper()
	template, err := catalog.GetOrCreateTemplate(key)
	require.NoError(t, err)
	return template
}

func runProcessor(t *testing.T, settings *Settings, nodes []RawNode, ways ...RawWay) (*Network, *Report) {
	t.Helper()
	processor := NewProcessor(settings)
	for _, node := range nodes {
		require.NoError(t, processor.Process(NodeEntity(node)))
	}
	for _, way := range ways {
		require.NoError(t, processor.Process(WayEntity(way)))
	}
	network, report, err := processor.Finish()
	require.NoError(t, err)
	return network, report
}

// linksOfWay returns active links produced by OSM way
func linksOfWay(network *Network, wayID osm.WayID) []*NetworkLink {
	links := []*NetworkLink{}
	for _, link := range network.Links() {
		if link.OSMWayID == wayID {
			links = append(links, link)
		}
	}
	return links
}

func segmentOf(t *testing.T, network *Network, link *NetworkLink, direction DirectionType) *LinkSegment {
	t.Helper()
	segment, ok := network.Segment(link.SegmentID(direction))
	require.True(t, ok, "link %d has no %s segment", link.ID, direction)
	return segment
}
