package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/LdDl/osm2net"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	osmFileName   string
	configFile    string
	out           string
	geomFormat    string
	costType      string
	doContraction bool
	metricsFile   string
	verbose       bool
	missingPolicy string
)

var rootCmd = &cobra.Command{
	Use:   "osm2net",
	Short: "Convert OSM nodes and ways into multimodal transport network",
	Long: `osm2net reads *.osm / *.osm.pbf file and produces network of nodes, links and directed link segments.
If output file name is 'map.csv' then next files will be produced:
	'map_nodes.csv', 'map_links.csv', 'map_link_segments.csv' - the network
	'map_ch_vertices.csv', 'map_ch_shortcuts.csv' - contraction hierarchies of link segments graph
	'map.geojson' - nodes and links as GeoJSON features (only when --geomf=geojson)`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&osmFileName, "file", "my_graph.osm.pbf", "Filename of *.osm or *.osm.pbf file")
	flags.StringVar(&configFile, "config", "", "Settings file (yaml / json / toml). Empty means defaults and OSM2NET_* environment variables")
	flags.StringVar(&out, "out", "my_graph.csv", "Filename of 'Comma-Separated Values' (CSV) formatted file")
	flags.StringVar(&geomFormat, "geomf", "wkt", "Format of output geometry. Expected values: wkt / geojson")
	flags.StringVar(&costType, "cost", "seconds", "Weight of contraction hierarchies edges. Expected values: seconds / meters")
	flags.BoolVar(&doContraction, "contract", true, "Prepare contraction hierarchies?")
	flags.StringVar(&metricsFile, "metrics", "", "Filename for conversion counters in Prometheus text format. Empty means no file")
	flags.BoolVar(&verbose, "verbose", false, "Development logger with debug messages")
	flags.StringVar(&missingPolicy, "missing-nodes", "salvage", "What to do with ways referencing missing nodes. Expected values: salvage / abort")
}

func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

func run(ctx context.Context) error {
	logger, err := newLogger()
	if err != nil {
		return errors.Wrap(err, "Can't prepare logger")
	}
	defer logger.Sync()

	format := osm2net.ParseGeomFormat(geomFormat)
	cost := osm2net.ParseCostType(costType)
	if cost == osm2net.COST_UNDEFINED {
		return fmt.Errorf("Unknown cost type '%s'", costType)
	}
	policy, err := osm2net.ParseMissingNodesPolicy(missingPolicy)
	if err != nil {
		return err
	}

	settings, err := osm2net.LoadSettings(configFile)
	if err != nil {
		return err
	}

	nodes, ways, err := osm2net.ReadOSM(ctx, osmFileName, logger)
	if err != nil {
		return err
	}

	processor := osm2net.NewProcessor(settings, osm2net.WithLogger(logger), osm2net.WithMissingNodesPolicy(policy))
	logger.Sugar().Infof("%s", processor)
	network, report, err := processor.Run(ctx, nodes, ways)
	if err != nil {
		return err
	}

	st := time.Now()
	err = network.ExportToCSV(out, format)
	if err != nil {
		return err
	}
	if format == osm2net.GEOM_FORMAT_GEOJSON {
		err = network.ExportToGeoJSON(strings.Split(out, ".csv")[0] + ".geojson")
		if err != nil {
			return err
		}
	}
	logger.Info("Network exported", zap.String("out", out), zap.Duration("elapsed", time.Since(st)))

	err = network.ExportToCH(out, format, cost, doContraction, logger)
	if err != nil {
		return err
	}

	if metricsFile != "" {
		err = report.WriteTextfile(metricsFile)
		if err != nil {
			return err
		}
		logger.Info("Metrics written", zap.String("filename", metricsFile))
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
