package osm2net

import (
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func roundabout() map[string]string {
	return map[string]string{"highway": "primary", "junction": "roundabout"}
}

// Square ring 10-11-12-13 listed counter-clockwise and an approach from the south-west
func roundaboutNodes() []RawNode {
	return []RawNode{
		gridNode(1, -1, -1),
		gridNode(10, 0, 0),
		gridNode(11, 1, 0),
		gridNode(12, 1, 1),
		gridNode(13, 0, 1),
	}
}

func TestFindLoop(t *testing.T) {
	i, j, ok := findLoop([]osm.NodeID{1, 2, 3, 4, 2, 5, 1}, 0)
	require.True(t, ok)
	assert.Equal(t, 1, i)
	assert.Equal(t, 4, j)

	i, j, ok = findLoop([]osm.NodeID{1, 2, 3, 4, 2, 5, 1}, 4)
	assert.False(t, ok)
	assert.Equal(t, -1, i)
	assert.Equal(t, -1, j)
}

func TestDecomposeSingleAnchorRoundabout(t *testing.T) {
	network, report := runProcessor(t, nil, roundaboutNodes(),
		newTestWay(1, map[string]string{"highway": "primary"}, 1, 10),
		newTestWay(2, roundabout(), 10, 11, 12, 13, 10),
	)
	assert.Equal(t, 1, report.CircularWays)
	assert.Equal(t, 2, report.WaysProcessed)

	links := linksOfWay(network, 2)
	require.Len(t, links, 2)
	assert.Equal(t, []osm.NodeID{10, 11, 12}, links[0].OSMNodeIDs)
	assert.Equal(t, []osm.NodeID{12, 13, 10}, links[1].OSMNodeIDs)
	for _, link := range links {
		forward := segmentOf(t, network, link, DIRECTION_FORWARD)
		assert.Equal(t, MODES_MOTORIZED, forward.Modes)
		assert.Equal(t, NO_SEGMENT, link.SegmentID(DIRECTION_BACKWARD))
	}

	anchor, ok := network.NodeByOSM(10)
	require.True(t, ok)
	assert.Equal(t, 3, anchor.Degree())
	opposite, ok := network.NodeByOSM(12)
	require.True(t, ok)
	assert.Equal(t, 2, opposite.Degree())
}

func TestDecomposeClockwiseRoundabout(t *testing.T) {
	// Ring drawn clockwise: right-hand traffic travels against the way
	network, _ := runProcessor(t, nil, roundaboutNodes(),
		newTestWay(1, map[string]string{"highway": "primary"}, 1, 10),
		newTestWay(2, roundabout(), 10, 13, 12, 11, 10),
	)
	links := linksOfWay(network, 2)
	require.Len(t, links, 2)
	for _, link := range links {
		assert.Equal(t, NO_SEGMENT, link.SegmentID(DIRECTION_FORWARD))
		segmentOf(t, network, link, DIRECTION_BACKWARD)
	}

	t.Run("left-hand traffic", func(t *testing.T) {
		settings := DefaultSettings()
		settings.CountryCode = "GB"
		network, _ := runProcessor(t, settings, roundaboutNodes(),
			newTestWay(1, map[string]string{"highway": "primary"}, 1, 10),
			newTestWay(2, roundabout(), 10, 13, 12, 11, 10),
		)
		links := linksOfWay(network, 2)
		require.Len(t, links, 2)
		for _, link := range links {
			segmentOf(t, network, link, DIRECTION_FORWARD)
			assert.Equal(t, NO_SEGMENT, link.SegmentID(DIRECTION_BACKWARD))
		}
	})
}

func TestDecomposeSeveralAnchors(t *testing.T) {
	nodes := append(roundaboutNodes(), gridNode(2, 2, 2))
	network, _ := runProcessor(t, nil, nodes,
		newTestWay(1, map[string]string{"highway": "primary"}, 1, 10),
		newTestWay(3, map[string]string{"highway": "primary"}, 2, 12),
		newTestWay(2, roundabout(), 10, 11, 12, 13, 10),
	)
	links := linksOfWay(network, 2)
	require.Len(t, links, 2)
	assert.Equal(t, []osm.NodeID{10, 11, 12}, links[0].OSMNodeIDs)
	assert.Equal(t, []osm.NodeID{12, 13, 10}, links[1].OSMNodeIDs)
	node, ok := network.NodeByOSM(12)
	require.True(t, ok)
	assert.Equal(t, 3, node.Degree())
}

func TestDecomposeAnchorOnShapePoint(t *testing.T) {
	// Approach way passes the ring node 10 as shape point
	nodes := append(roundaboutNodes(), gridNode(2, -1, 1))
	network, report := runProcessor(t, nil, nodes,
		newTestWay(1, map[string]string{"highway": "primary"}, 1, 10, 2),
		newTestWay(2, roundabout(), 10, 11, 12, 13, 10),
	)
	assert.Equal(t, 0, report.CircularLoopsDropped)
	assert.Len(t, linksOfWay(network, 2), 2)
	assert.Len(t, linksOfWay(network, 1), 2)
	node, ok := network.NodeByOSM(10)
	require.True(t, ok)
	assert.Equal(t, 4, node.Degree())
}

func TestDecomposeIsolatedLoop(t *testing.T) {
	network, report := runProcessor(t, nil, roundaboutNodes(), newTestWay(2, roundabout(), 10, 11, 12, 13, 10))
	assert.Empty(t, network.Links())
	assert.Equal(t, 1, report.CircularLoopsDropped)
	assert.Equal(t, 1, report.WaysFailed)
	assert.Equal(t, 0, report.WaysProcessed)
}

func TestDecomposeLasso(t *testing.T) {
	// Leading part 1-10, loop 10-11-12-13-10, trailing part 10-2
	nodes := append(roundaboutNodes(), gridNode(2, -1, 2))
	network, report := runProcessor(t, nil, nodes,
		newTestWay(5, map[string]string{"highway": "residential"}, 1, 10, 11, 12, 13, 10, 2),
	)
	assert.Equal(t, 1, report.CircularWays)
	links := linksOfWay(network, 5)
	require.Len(t, links, 4)
	ids := [][]osm.NodeID{}
	for _, link := range links {
		ids = append(ids, link.OSMNodeIDs)
	}
	assert.ElementsMatch(t, [][]osm.NodeID{{1, 10}, {10, 2}, {10, 11, 12}, {12, 13, 10}}, ids)

	for _, link := range links {
		if link.OSMNodeIDs[0] == 1 || link.OSMNodeIDs[1] == 2 {
			segmentOf(t, network, link, DIRECTION_FORWARD)
			segmentOf(t, network, link, DIRECTION_BACKWARD)
			continue
		}
		// Loop parts are single-direction
		segmentOf(t, network, link, DIRECTION_FORWARD)
		assert.Equal(t, NO_SEGMENT, link.SegmentID(DIRECTION_BACKWARD))
	}
}
