package osm2net

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EntityKind is kind of OSM entity fed into processor
type EntityKind uint16

const (
	ENTITY_NODE = EntityKind(iota + 1)
	ENTITY_WAY
	ENTITY_UNDEFINED = EntityKind(0)
)

func (iotaIdx EntityKind) String() string {
	return [...]string{"undefined", "node", "way"}[iotaIdx]
}

// Entity is tagged variant of OSM entity. Only the field matching Kind is meaningful
type Entity struct {
	Kind EntityKind
	Node RawNode
	Way  RawWay
}

func NodeEntity(node RawNode) Entity {
	return Entity{Kind: ENTITY_NODE, Node: node}
}

func WayEntity(way RawWay) Entity {
	return Entity{Kind: ENTITY_WAY, Way: way}
}

// Processor drives conversion: nodes, then ways in arrival order, then deferred circular ways and topology correction
type Processor struct {
	settings *Settings
	policy   MissingNodesPolicy
	logger   *zap.Logger

	nodes    NodeStore
	network  *Network
	catalog  *Catalog
	engine   *RuleEngine
	builder  *Builder
	report   *Report
	circular []circularWay
	stopped  bool
	finished bool
}

type circularWay struct {
	way      RawWay
	template *AttributeTemplate
}

func (processor *Processor) String() string {
	return fmt.Sprintf(`
Network processor parameters:
	activated_way_types: %v
	fallback_way_type: '%s'
	country_code: '%s'
	driving_side: %s
	missing_nodes_policy: %s
	`,
		processor.settings.ActivatedWayTypes,
		processor.settings.FallbackWayType,
		processor.settings.CountryCode,
		processor.settings.DrivingSide(),
		processor.policy,
	)
}

func NewProcessor(settings *Settings, options ...func(*Processor)) *Processor {
	if settings == nil {
		settings = DefaultSettings()
	}
	processor := &Processor{
		settings: settings,
		policy:   MISSING_NODES_SALVAGE,
		logger:   zap.NewNop(),
	}
	for _, option := range options {
		option(processor)
	}
	processor.nodes = make(NodeStore)
	processor.network = NewNetwork()
	processor.report = NewReport()
	processor.catalog = NewCatalog(settings)
	processor.engine = NewRuleEngine(settings.Modes(), processor.report, processor.logger)
	processor.builder = NewBuilder(processor.network, processor.catalog, processor.engine, processor.nodes, settings.DrivingSide(), processor.policy, processor.report, processor.logger)
	processor.circular = make([]circularWay, 0)
	return processor
}

func WithLogger(logger *zap.Logger) func(*Processor) {
	return func(processor *Processor) {
		if logger != nil {
			processor.logger = logger
		}
	}
}

func WithMissingNodesPolicy(policy MissingNodesPolicy) func(*Processor) {
	return func(processor *Processor) {
		processor.policy = policy
	}
}

func (processor *Processor) Network() *Network {
	return processor.network
}

func (processor *Processor) Catalog() *Catalog {
	return processor.catalog
}

func (processor *Processor) Report() *Report {
	return processor.report
}

// Process dispatches entity by its kind
func (processor *Processor) Process(entity Entity) error {
	switch entity.Kind {
	case ENTITY_NODE:
		processor.ProcessNode(entity.Node)
		return nil
	case ENTITY_WAY:
		return processor.ProcessWay(entity.Way)
	default:
		return fmt.Errorf("Unhandled entity kind '%s'", entity.Kind)
	}
}

// ProcessNode stores node. Graph nodes are created lazily when ways need them
func (processor *Processor) ProcessNode(node RawNode) {
	processor.report.NodesRead++
	processor.nodes.Add(node)
}

// Stop makes processor ignore further ways. Finish still completes the network
func (processor *Processor) Stop() {
	processor.stopped = true
}

// ProcessWay builds links for way. Only invariant violations are returned; data problems are logged and counted
func (processor *Processor) ProcessWay(way RawWay) error {
	if processor.stopped || processor.finished {
		processor.report.WaysIgnoredAfterStop++
		return nil
	}
	processor.report.WaysRead++
	if len(way.Nodes) < 2 || isAreaWay(way.Tags) || isPOIWay(way.Tags) || isNegligibleWay(way.Tags) {
		processor.report.WaysFiltered++
		return nil
	}
	key, ok := classifyWay(way.Tags)
	if !ok {
		processor.report.WaysFiltered++
		return nil
	}
	template, err := processor.catalog.GetOrCreateTemplate(key)
	if err != nil {
		switch {
		case errors.Is(err, ErrWayTypeNotActivated):
			processor.report.WaysNotActivated++
			processor.logger.Debug("Way type is not activated", zap.Int64("way_id", int64(way.ID)), zap.String("way_type", key))
		case errors.Is(err, ErrUnknownWayType):
			processor.report.WaysUnknownType++
			processor.logger.Info("Way type is not supported, way skipped", zap.Int64("way_id", int64(way.ID)), zap.String("way_type", key))
		default:
			return errors.Wrapf(err, "Can't get template for way %d", way.ID)
		}
		return nil
	}
	if way.IsCircular() {
		processor.report.CircularWays++
		processor.circular = append(processor.circular, circularWay{way: way, template: template})
		return nil
	}
	link, err := processor.builder.BuildWay(&way, template)
	return processor.accountWay(&way, link != nil, err)
}

// accountWay turns build outcome into counters. Missing nodes are data problem, not an error
func (processor *Processor) accountWay(way *RawWay, built bool, err error) error {
	if err != nil {
		processor.report.WaysFailed++
		if errors.Is(err, ErrMissingNodes) {
			processor.logger.Debug("Way skipped due missing nodes", zap.Int64("way_id", int64(way.ID)), zap.Error(err))
			return nil
		}
		return err
	}
	if !built {
		processor.report.WaysFailed++
		return nil
	}
	processor.report.WaysProcessed++
	return nil
}

// Finish builds deferred circular ways, corrects topology and returns the result. Further calls return the same result
func (processor *Processor) Finish() (*Network, *Report, error) {
	if processor.finished {
		return processor.network, processor.report, nil
	}
	processor.finished = true

	st := time.Now()
	var failed error
	for i := range processor.circular {
		deferred := &processor.circular[i]
		links, err := processor.builder.Decompose(&deferred.way, deferred.template)
		err = processor.accountWay(&deferred.way, len(links) > 0, err)
		if err != nil {
			processor.logger.Error("Can't decompose circular way", zap.Int64("way_id", int64(deferred.way.ID)), zap.Error(err))
			if failed == nil {
				failed = err
			}
		}
	}
	processor.logger.Info("Circular ways processed", zap.Int("ways", len(processor.circular)), zap.Duration("elapsed", time.Since(st)))
	processor.circular = nil

	st = time.Now()
	NewTopologyCorrector(processor.network, processor.report, processor.logger).Correct()
	processor.logger.Info("Topology corrected", zap.Int("links_broken", processor.report.LinksBroken), zap.Duration("elapsed", time.Since(st)))

	for _, template := range processor.catalog.Templates() {
		if template.IsDerived() {
			processor.report.DerivedTemplatesCreated++
		}
	}
	return processor.network, processor.report, failed
}

// Run feeds nodes and ways and finishes. Cancelled context stops accepting ways. Ways failed on invariant
// violations do not stop the run; the first such error is returned along with the network
func (processor *Processor) Run(ctx context.Context, nodes []RawNode, ways []RawWay) (*Network, *Report, error) {
	st := time.Now()
	for _, node := range nodes {
		processor.ProcessNode(node)
	}
	processor.logger.Info("Nodes processed", zap.Int("nodes", len(nodes)), zap.Duration("elapsed", time.Since(st)))

	st = time.Now()
	var failed error
	for i := range ways {
		if ctx.Err() != nil && !processor.stopped {
			processor.logger.Warn("Context is done, no more ways accepted", zap.Error(ctx.Err()))
			processor.Stop()
		}
		err := processor.ProcessWay(ways[i])
		if err != nil {
			processor.logger.Error("Can't process way", zap.Int64("way_id", int64(ways[i].ID)), zap.Error(err))
			if failed == nil {
				failed = err
			}
		}
	}
	processor.logger.Info("Ways processed", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))

	network, report, err := processor.Finish()
	if err != nil {
		processor.logger.Error("Network finished with errors", zap.Error(err))
		if failed == nil {
			failed = err
		}
	}
	report.Log(processor.logger)
	if failed != nil {
		return network, report, errors.Wrap(failed, "Conversion finished with errors")
	}
	return network, report, nil
}
