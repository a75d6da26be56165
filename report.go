package osm2net

import (
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Report accumulates diagnostics of a single conversion run
type Report struct {
	NodesRead               int
	WaysRead                int
	WaysProcessed           int
	WaysFiltered            int
	WaysNotActivated        int
	WaysUnknownType         int
	WaysFailed              int
	WaysIgnoredAfterStop    int
	CircularWays            int
	CircularLoopsDropped    int
	LinksCreated            int
	LinksReused             int
	LinksBroken             int
	LinkSegments            int
	MissingEndpoints        int
	MissingNodes            int
	SalvagedGeometries      int
	DirectionsResolved      int
	MissingSpeed            int
	MissingLanes            int
	InvalidSpeed            int
	InvalidLanes            int
	TruncatedLanes          int
	SkippedBreaks           int
	DerivedTemplatesCreated int
}

func NewReport() *Report {
	return &Report{}
}

func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return 100.0 * float64(part) / float64(total)
}

// MissingSpeedPercent is share of resolved directions which got speed limit from defaults
func (report *Report) MissingSpeedPercent() float64 {
	return percent(report.MissingSpeed, report.DirectionsResolved)
}

// MissingLanesPercent is share of resolved directions which got lanes number from defaults
func (report *Report) MissingLanesPercent() float64 {
	return percent(report.MissingLanes, report.DirectionsResolved)
}

// WaysSkipped is total number of ways which produced nothing
func (report *Report) WaysSkipped() int {
	return report.WaysFiltered + report.WaysNotActivated + report.WaysUnknownType + report.WaysFailed + report.WaysIgnoredAfterStop
}

func (report *Report) Log(logger *zap.Logger) {
	logger.Info("Conversion report",
		zap.Int("nodes_read", report.NodesRead),
		zap.Int("ways_read", report.WaysRead),
		zap.Int("ways_processed", report.WaysProcessed),
		zap.Int("ways_skipped", report.WaysSkipped()),
		zap.Int("circular_ways", report.CircularWays),
		zap.Int("circular_loops_dropped", report.CircularLoopsDropped),
		zap.Int("links_created", report.LinksCreated),
		zap.Int("links_broken", report.LinksBroken),
		zap.Int("link_segments", report.LinkSegments),
		zap.Int("missing_nodes", report.MissingNodes),
		zap.Int("skipped_breaks", report.SkippedBreaks),
		zap.Int("invalid_speed", report.InvalidSpeed),
		zap.Int("invalid_lanes", report.InvalidLanes),
	)
	logger.Sugar().Infof("Missing speed limit: %.2f%%, missing lanes: %.2f%%", report.MissingSpeedPercent(), report.MissingLanesPercent())
}

type reportGauge struct {
	name  string
	help  string
	value func() float64
}

func (report *Report) gauges() []reportGauge {
	count := func(v *int) func() float64 {
		return func() float64 { return float64(*v) }
	}
	return []reportGauge{
		{"nodes_read", "Number of OSM nodes read", count(&report.NodesRead)},
		{"ways_read", "Number of OSM ways read", count(&report.WaysRead)},
		{"ways_processed", "Number of OSM ways converted into links", count(&report.WaysProcessed)},
		{"ways_skipped", "Number of OSM ways which produced nothing", func() float64 { return float64(report.WaysSkipped()) }},
		{"circular_ways", "Number of ways with repeated nodes", count(&report.CircularWays)},
		{"circular_loops_dropped", "Number of loops without connection to the network", count(&report.CircularLoopsDropped)},
		{"links_created", "Number of links created", count(&report.LinksCreated)},
		{"links_broken", "Number of links replaced by topology correction", count(&report.LinksBroken)},
		{"link_segments", "Number of link segments created", count(&report.LinkSegments)},
		{"missing_nodes", "Number of referenced nodes not found", count(&report.MissingNodes)},
		{"skipped_breaks", "Number of link breaks which could not be resolved", count(&report.SkippedBreaks)},
		{"invalid_speed_values", "Number of unparsable speed values", count(&report.InvalidSpeed)},
		{"invalid_lanes_values", "Number of unparsable lanes values", count(&report.InvalidLanes)},
		{"missing_speed_percent", "Share of directions with default speed limit", report.MissingSpeedPercent},
		{"missing_lanes_percent", "Share of directions with default lanes number", report.MissingLanesPercent},
	}
}

// Register exposes counters as gauges
func (report *Report) Register(registerer prometheus.Registerer) error {
	for _, gauge := range report.gauges() {
		collector := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "osm2net",
			Name:      gauge.name,
			Help:      gauge.help,
		}, gauge.value)
		err := registerer.Register(collector)
		if err != nil {
			return errors.Wrapf(err, "Can't register gauge '%s'", gauge.name)
		}
	}
	return nil
}

// WriteTextfile dumps counters in Prometheus text format
func (report *Report) WriteTextfile(filename string) error {
	registry := prometheus.NewRegistry()
	err := report.Register(registry)
	if err != nil {
		return err
	}
	err = prometheus.WriteToTextfile(filename, registry)
	if err != nil {
		return errors.Wrap(err, "Can't write metrics")
	}
	return nil
}
