package osm2net

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/osm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadOSM(t *testing.T) {
	nodes, ways, err := ReadOSM(context.Background(), filepath.Join("testdata", "sample.osm"), nil)
	require.NoError(t, err)
	require.Len(t, ways, 3)
	assert.Equal(t, osm.WayID(100), ways[0].ID)
	assert.Equal(t, []osm.NodeID{1, 2, 3}, ways[0].Nodes)
	assert.Equal(t, "Hauptstrasse", ways[0].Name())
	assert.Equal(t, "primary", ways[0].Tags["highway"])

	// Node 6 is not referenced, node 7 does not exist
	ids := make([]osm.NodeID, 0, len(nodes))
	for _, node := range nodes {
		ids = append(ids, node.ID)
	}
	assert.ElementsMatch(t, []osm.NodeID{1, 2, 3, 4, 5}, ids)
	assert.InDelta(t, 13.401, nodes[1].Lon, 1e-9)
	assert.InDelta(t, 52.5, nodes[1].Lat, 1e-9)

	t.Run("conversion", func(t *testing.T) {
		processor := NewProcessor(nil)
		network, report, err := processor.Run(context.Background(), nodes, ways)
		require.NoError(t, err)
		assert.Equal(t, 2, report.WaysProcessed)
		assert.Equal(t, 1, report.WaysFailed)
		assert.Equal(t, 1, report.MissingEndpoints)
		assert.Equal(t, 2, report.LinksBroken)
		node, ok := network.NodeByOSM(2)
		require.True(t, ok)
		assert.Equal(t, 4, node.Degree())
		assert.Len(t, network.Links(), 4)
	})
}

func TestReadOSMErrors(t *testing.T) {
	_, _, err := ReadOSM(context.Background(), filepath.Join("testdata", "missing.osm"), nil)
	assert.Error(t, err)
	filename := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(filename, []byte("<osm></osm>"), 0644))
	_, _, err = ReadOSM(context.Background(), filename, nil)
	assert.Error(t, err)
}
