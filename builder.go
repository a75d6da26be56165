package osm2net

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/osm"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// RawWay is OSM way as it comes from the reader. Nodes may repeat
type RawWay struct {
	ID    osm.WayID
	Nodes []osm.NodeID
	Tags  map[string]string
}

// Name returns `name` tag
func (way *RawWay) Name() string {
	return way.Tags["name"]
}

// IsCircular checks if any node id appears more than once
func (way *RawWay) IsCircular() bool {
	seen := make(map[osm.NodeID]struct{}, len(way.Nodes))
	for _, id := range way.Nodes {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// Builder turns node sequences into links and link segments
type Builder struct {
	network *Network
	catalog *Catalog
	engine  *RuleEngine
	nodes   NodeStore
	side    DrivingSide
	policy  MissingNodesPolicy
	report  *Report
	logger  *zap.Logger
}

func NewBuilder(network *Network, catalog *Catalog, engine *RuleEngine, nodes NodeStore, side DrivingSide, policy MissingNodesPolicy, report *Report, logger *zap.Logger) *Builder {
	if logger == nil {
		logger = zap.NewNop()
	}
	if report == nil {
		report = NewReport()
	}
	return &Builder{
		network: network,
		catalog: catalog,
		engine:  engine,
		nodes:   nodes,
		side:    side,
		policy:  policy,
		report:  report,
		logger:  logger,
	}
}

// BuildLink creates link for nodeIDs[startIndex..endIndex] (wrapping around when endIndex < startIndex)
// or returns existing link with the same geometry. Nil link without error means the range can't form a link
func (builder *Builder) BuildLink(way *RawWay, nodeIDs []osm.NodeID, startIndex, endIndex int) (*NetworkLink, error) {
	indices, err := rangeIndices(nodeIDs, startIndex, endIndex)
	if err != nil {
		return nil, errors.Wrapf(err, "way %d", way.ID)
	}
	firstID, lastID := nodeIDs[startIndex], nodeIDs[endIndex]
	if firstID == lastID {
		builder.logger.Debug("Range starts and ends at the same node", zap.Int64("way_id", int64(way.ID)), zap.Int64("node_id", int64(firstID)))
		return nil, nil
	}
	first, okFirst := builder.nodes.Get(firstID)
	last, okLast := builder.nodes.Get(lastID)
	if !okFirst || !okLast {
		builder.report.MissingEndpoints++
		builder.logger.Debug("Endpoint node is unavailable", zap.Int64("way_id", int64(way.ID)), zap.Int64("source", int64(firstID)), zap.Int64("target", int64(lastID)))
		return nil, nil
	}

	rangeIDs := make([]osm.NodeID, len(indices))
	for i, idx := range indices {
		rangeIDs[i] = nodeIDs[idx]
	}
	extracted, err := ExtractGeometry(rangeIDs, builder.nodes, builder.policy, false)
	builder.report.MissingNodes += len(extracted.Missing)
	if err != nil {
		return nil, errors.Wrapf(err, "way %d", way.ID)
	}
	geom, ok := extracted.Geom.(orb.LineString)
	if !ok {
		builder.logger.Debug("Not enough nodes for line geometry", zap.Int64("way_id", int64(way.ID)), zap.Int("missing", len(extracted.Missing)))
		return nil, nil
	}
	if extracted.Salvaged() {
		builder.report.SalvagedGeometries++
		builder.logger.Debug("Line geometry salvaged", zap.Int64("way_id", int64(way.ID)), zap.Int("missing", len(extracted.Missing)))
	}

	source := builder.network.getOrCreateNode(firstID, first.Point())
	target := builder.network.getOrCreateNode(lastID, last.Point())
	if existing, ok := builder.network.findLink(source.ID, target.ID, geom); ok {
		builder.report.LinksReused++
		return existing, nil
	}
	link := builder.network.addLink(source.ID, target.ID, way.ID, way.Name(), geom, extracted.OSMNodeIDs)
	builder.report.LinksCreated++
	for i := 1; i < len(extracted.OSMNodeIDs)-1; i++ {
		builder.network.registerInterior(extracted.OSMNodeIDs[i], link.ID)
	}
	return link, nil
}

// BuildSegments creates up to two segments of the link. Attributes are given in the link's orientation.
// Direction with no modes gets no segment; direction which already has a segment keeps it
func (builder *Builder) BuildSegments(link *NetworkLink, template *AttributeTemplate, forward, backward DirectionalAttributes) error {
	if link == nil {
		return errors.New("nil link")
	}
	if template == nil {
		return errors.Errorf("nil template for link %d", link.ID)
	}
	for _, direction := range []DirectionType{DIRECTION_FORWARD, DIRECTION_BACKWARD} {
		attrs := forward
		if direction == DIRECTION_BACKWARD {
			attrs = backward
		}
		if !attrs.IsPassable() {
			continue
		}
		if link.SegmentID(direction) != NO_SEGMENT {
			builder.logger.Debug("Link segment exists already", zap.Int("link_id", int(link.ID)), zap.String("direction", direction.String()))
			continue
		}
		builder.network.addSegment(link, direction, attrs, builder.catalog.TemplateForModes(template, attrs.Modes))
		builder.report.LinkSegments++
	}
	return nil
}

// BuildPartial builds link for the range and its segments. Attributes are given in the way's orientation
func (builder *Builder) BuildPartial(way *RawWay, nodeIDs []osm.NodeID, startIndex, endIndex int, template *AttributeTemplate, attrs WayAttributes) (*NetworkLink, error) {
	link, err := builder.BuildLink(way, nodeIDs, startIndex, endIndex)
	if err != nil || link == nil {
		return nil, err
	}
	forward, backward := attrs.Forward, attrs.Backward
	if link.OSMNodeIDs[0] != nodeIDs[startIndex] {
		// Reused link runs against the way
		forward, backward = backward, forward
	}
	err = builder.BuildSegments(link, template, forward, backward)
	if err != nil {
		return nil, err
	}
	return link, nil
}

// BuildWay builds single link for non-circular way
func (builder *Builder) BuildWay(way *RawWay, template *AttributeTemplate) (*NetworkLink, error) {
	attrs := builder.engine.ResolveWay(way.Tags, builder.side, template, DIRECTION_UNDEFINED)
	return builder.BuildPartial(way, way.Nodes, 0, len(way.Nodes)-1, template, attrs)
}
