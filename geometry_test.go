package osm2net

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRangeIndices(t *testing.T) {
	open := []osm.NodeID{1, 2, 3, 4}
	closed := []osm.NodeID{1, 2, 3, 4, 1}
	cases := []struct {
		name    string
		nodeIDs []osm.NodeID
		start   int
		end     int
		indices []int
	}{
		{"straight", open, 0, 3, []int{0, 1, 2, 3}},
		{"inner", open, 1, 2, []int{1, 2}},
		{"wraparound open", open, 2, 1, []int{2, 3, 0, 1}},
		{"wraparound closed", closed, 2, 1, []int{2, 3, 0, 1}},
		{"wraparound to start", closed, 3, 0, []int{3, 0}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			indices, err := rangeIndices(tc.nodeIDs, tc.start, tc.end)
			require.NoError(t, err)
			assert.Equal(t, tc.indices, indices)
		})
	}

	for _, bounds := range [][2]int{{1, 1}, {-1, 2}, {0, 5}, {4, 0}} {
		_, err := rangeIndices(closed, bounds[0], bounds[1])
		assert.True(t, errors.Is(err, ErrIndexOutOfRange), "range %v", bounds)
	}
}

func TestExtractGeometry(t *testing.T) {
	store := make(NodeStore)
	for _, node := range []RawNode{gridNode(1, 0, 0), gridNode(2, 1, 0), gridNode(3, 1, 1), gridNode(4, 0, 1)} {
		store.Add(node)
	}

	t.Run("line", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 2, 3}, store, MISSING_NODES_SALVAGE, false)
		require.NoError(t, err)
		line, ok := extracted.Geom.(orb.LineString)
		require.True(t, ok)
		assert.Len(t, line, 3)
		assert.Equal(t, store[2].Point(), line[1])
		assert.Equal(t, []osm.NodeID{1, 2, 3}, extracted.OSMNodeIDs)
		assert.False(t, extracted.Salvaged())
	})

	t.Run("salvaged line", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 99, 3}, store, MISSING_NODES_SALVAGE, false)
		require.NoError(t, err)
		line, ok := extracted.Geom.(orb.LineString)
		require.True(t, ok)
		assert.Len(t, line, 2)
		assert.Equal(t, []osm.NodeID{1, 3}, extracted.OSMNodeIDs)
		assert.Equal(t, []osm.NodeID{99}, extracted.Missing)
		assert.True(t, extracted.Salvaged())
	})

	t.Run("abort", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 99, 3}, store, MISSING_NODES_ABORT, false)
		assert.True(t, errors.Is(err, ErrMissingNodes))
		assert.Equal(t, []osm.NodeID{99}, extracted.Missing)
	})

	t.Run("point", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{98, 2, 99}, store, MISSING_NODES_SALVAGE, false)
		require.NoError(t, err)
		assert.Equal(t, store[2].Point(), extracted.Geom)
		assert.Equal(t, []osm.NodeID{2}, extracted.OSMNodeIDs)
	})

	t.Run("nothing", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{98, 99}, store, MISSING_NODES_SALVAGE, false)
		require.NoError(t, err)
		assert.Nil(t, extracted.Geom)
		assert.Empty(t, extracted.OSMNodeIDs)
	})

	t.Run("polygon", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 2, 3, 4}, store, MISSING_NODES_SALVAGE, true)
		require.NoError(t, err)
		polygon, ok := extracted.Geom.(orb.Polygon)
		require.True(t, ok)
		require.Len(t, polygon, 1)
		assert.Len(t, polygon[0], 5)
		assert.True(t, polygon[0].Closed())
	})

	t.Run("salvaged polygon", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 2, 99, 4, 1}, store, MISSING_NODES_SALVAGE, true)
		require.NoError(t, err)
		polygon, ok := extracted.Geom.(orb.Polygon)
		require.True(t, ok)
		assert.Len(t, polygon[0], 4)
		assert.True(t, extracted.Salvaged())
	})

	t.Run("degenerate polygon", func(t *testing.T) {
		extracted, err := ExtractGeometry([]osm.NodeID{1, 2, 1}, store, MISSING_NODES_SALVAGE, true)
		require.NoError(t, err)
		_, ok := extracted.Geom.(orb.Point)
		assert.True(t, ok)
	})
}

func TestParseMissingNodesPolicy(t *testing.T) {
	policy, err := ParseMissingNodesPolicy("abort")
	require.NoError(t, err)
	assert.Equal(t, MISSING_NODES_ABORT, policy)
	policy, err = ParseMissingNodesPolicy("")
	require.NoError(t, err)
	assert.Equal(t, MISSING_NODES_SALVAGE, policy)
	_, err = ParseMissingNodesPolicy("ignore")
	assert.Error(t, err)
}
