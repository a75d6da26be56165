package osm2net

import (
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// circularState accumulates outcome of single circular way decomposition
type circularState struct {
	links        []*NetworkLink
	loops        int
	loopsDropped int
}

// findLoop returns the first index pair (i, j), offset <= i < j, pointing to the same node.
// Pairs are ordered by j, so the returned loop contains no inner repetitions
func findLoop(nodeIDs []osm.NodeID, offset int) (int, int, bool) {
	seen := make(map[osm.NodeID]int, len(nodeIDs)-offset)
	for j := offset; j < len(nodeIDs); j++ {
		if i, ok := seen[nodeIDs[j]]; ok {
			return i, j, true
		}
		seen[nodeIDs[j]] = j
	}
	return -1, -1, false
}

// Decompose splits way with repeated nodes into straight and circular parts. Straight parts are built as
// ordinary links; circular ones are split at anchors (graph nodes or shape points of other links) into
// single-direction links
func (builder *Builder) Decompose(way *RawWay, template *AttributeTemplate) ([]*NetworkLink, error) {
	if template == nil {
		return nil, errors.Errorf("nil template for way %d", way.ID)
	}
	state := &circularState{}
	err := builder.decompose(way, template, 0, state)
	builder.report.CircularLoopsDropped += state.loopsDropped
	builder.logger.Debug("Circular way decomposed", zap.Int64("way_id", int64(way.ID)), zap.Int("loops", state.loops), zap.Int("links", len(state.links)))
	return state.links, err
}

func (builder *Builder) decompose(way *RawWay, template *AttributeTemplate, offset int, state *circularState) error {
	nodeIDs := way.Nodes
	last := len(nodeIDs) - 1
	if offset >= last {
		return nil
	}
	i, j, ok := findLoop(nodeIDs, offset)
	if !ok {
		return builder.buildStraight(way, template, offset, last, state)
	}
	if i > offset {
		err := builder.buildStraight(way, template, offset, i, state)
		if err != nil {
			return err
		}
	}
	if j < last {
		// Context links of the trailing part have to exist before the loop looks for anchors
		err := builder.decompose(way, template, j, state)
		if err != nil {
			return err
		}
	}
	return builder.buildLoop(way, template, i, j, state)
}

func (builder *Builder) buildStraight(way *RawWay, template *AttributeTemplate, start, end int, state *circularState) error {
	attrs := builder.engine.ResolveWay(way.Tags, builder.side, template, DIRECTION_UNDEFINED)
	link, err := builder.BuildPartial(way, way.Nodes, start, end, template, attrs)
	if err != nil {
		return err
	}
	if link != nil {
		state.links = append(state.links, link)
	}
	return nil
}

// loopAnchors returns loop positions (relative to loop start) which connect loop to the rest of network
func (builder *Builder) loopAnchors(loop []osm.NodeID) []int {
	anchors := []int{}
	for k := 0; k < len(loop)-1; k++ {
		if _, ok := builder.network.NodeByOSM(loop[k]); ok {
			anchors = append(anchors, k)
			continue
		}
		if builder.network.IsInterior(loop[k]) {
			anchors = append(anchors, k)
		}
	}
	return anchors
}

// buildLoop builds closed sequence nodeIDs[i..j] (nodeIDs[i] == nodeIDs[j]) as partial links between anchors
func (builder *Builder) buildLoop(way *RawWay, template *AttributeTemplate, i, j int, state *circularState) error {
	state.loops++
	loop := way.Nodes[i : j+1]
	size := len(loop) - 1
	anchors := builder.loopAnchors(loop)
	switch len(anchors) {
	case 0:
		state.loopsDropped++
		builder.logger.Warn("Circular part is not connected to the network, dropped", zap.Int64("way_id", int64(way.ID)), zap.Int("from", i), zap.Int("to", j))
		return nil
	case 1:
		if size < 2 {
			state.loopsDropped++
			builder.logger.Warn("Circular part is too short, dropped", zap.Int64("way_id", int64(way.ID)))
			return nil
		}
		opposite := (anchors[0] + size/2) % size
		anchors = append(anchors, opposite)
		sort.Ints(anchors)
	}

	travel := builder.loopTravelDirection(loop)
	attrs := builder.engine.ResolveWay(way.Tags, builder.side, template, travel)
	for t := range anchors {
		start := anchors[t]
		end := anchors[(t+1)%len(anchors)]
		link, err := builder.BuildPartial(way, loop, start, end, template, attrs)
		if err != nil {
			return err
		}
		if link != nil {
			state.links = append(state.links, link)
		}
	}
	return nil
}

// loopTravelDirection returns way direction matching traffic convention: counter-clockwise for
// right-hand traffic and clockwise for left-hand traffic
func (builder *Builder) loopTravelDirection(loop []osm.NodeID) DirectionType {
	ring := make(orb.Ring, 0, len(loop))
	for _, id := range loop {
		node, ok := builder.nodes.Get(id)
		if !ok {
			continue
		}
		ring = append(ring, node.Point())
	}
	expected := orb.CCW
	if builder.side == DRIVING_LEFT {
		expected = orb.CW
	}
	if len(ring) >= 3 && !ring[0].Equal(ring[len(ring)-1]) {
		ring = append(ring, ring[0])
	}
	orientation := orb.Orientation(0)
	if len(ring) >= 4 {
		orientation = ring.Orientation()
	}
	if orientation == 0 {
		// Degenerate loop: keep the way direction for clockwise convention
		if builder.side == DRIVING_LEFT {
			return DIRECTION_FORWARD
		}
		return DIRECTION_BACKWARD
	}
	if orientation == expected {
		return DIRECTION_FORWARD
	}
	return DIRECTION_BACKWARD
}
