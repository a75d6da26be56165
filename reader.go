package osm2net

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type OSMScanner interface {
	Scan() bool
	Close() error
	Err() error
	Object() osm.Object
}

// newScanner guesses file format by extension
func newScanner(ctx context.Context, filename string, file io.Reader) (OSMScanner, error) {
	ext := filepath.Ext(filename)
	switch ext {
	case ".osm", ".xml":
		return osmxml.New(ctx, file), nil
	case ".pbf":
		return osmpbf.New(ctx, file, runtime.GOMAXPROCS(-1)), nil
	default:
		return nil, fmt.Errorf("File extension '%s' for file '%s' is not handled yet", ext, filename)
	}
}

// ReadOSM reads ways and the nodes they reference. Ways are scanned first so unreferenced nodes are not kept
func ReadOSM(ctx context.Context, filename string, logger *zap.Logger) ([]RawNode, []RawWay, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger.Info("Opening file", zap.String("filename", filename))
	file, err := os.Open(filename)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't open file")
	}
	defer file.Close()

	st := time.Now()
	ways := []RawWay{}
	nodesSeen := make(map[osm.NodeID]struct{})
	{
		scannerWays, err := newScanner(ctx, filename, file)
		if err != nil {
			return nil, nil, err
		}
		defer scannerWays.Close()

		for scannerWays.Scan() {
			obj := scannerWays.Object()
			if obj.ObjectID().Type() != osm.TypeWay {
				continue
			}
			way := obj.(*osm.Way)
			preparedWay := RawWay{
				ID:    way.ID,
				Nodes: make([]osm.NodeID, 0, len(way.Nodes)),
				Tags:  way.Tags.Map(),
			}
			for _, node := range way.Nodes {
				nodesSeen[node.ID] = struct{}{}
				preparedWay.Nodes = append(preparedWay.Nodes, node.ID)
			}
			ways = append(ways, preparedWay)
		}
		err = scannerWays.Err()
		if err != nil {
			return nil, nil, errors.Wrap(err, "Can't scan ways")
		}
	}
	logger.Info("Ways scanned", zap.Int("ways", len(ways)), zap.Duration("elapsed", time.Since(st)))

	// Seek file to start
	_, err = file.Seek(0, io.SeekStart)
	if err != nil {
		return nil, nil, errors.Wrap(err, "Can't repeat seeking after ways scanning")
	}

	st = time.Now()
	nodes := make([]RawNode, 0, len(nodesSeen))
	{
		scannerNodes, err := newScanner(ctx, filename, file)
		if err != nil {
			return nil, nil, err
		}
		defer scannerNodes.Close()

		for scannerNodes.Scan() {
			obj := scannerNodes.Object()
			if obj.ObjectID().Type() != osm.TypeNode {
				continue
			}
			node := obj.(*osm.Node)
			if _, ok := nodesSeen[node.ID]; !ok {
				continue
			}
			delete(nodesSeen, node.ID)
			nodes = append(nodes, RawNode{
				ID:  node.ID,
				Lon: node.Lon,
				Lat: node.Lat,
			})
		}
		err = scannerNodes.Err()
		if err != nil {
			return nil, nil, errors.Wrap(err, "Can't scan nodes")
		}
	}
	logger.Info("Nodes scanned", zap.Int("nodes", len(nodes)), zap.Int("missing", len(nodesSeen)), zap.Duration("elapsed", time.Since(st)))
	return nodes, ways, nil
}
