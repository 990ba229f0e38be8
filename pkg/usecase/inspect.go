package usecase

import (
	"context"
	"os"
	"runtime"
	"time"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/tagfilter"
	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
)

// Inspect scans a PBF extract and counts how the tag filter would route its
// objects, without touching the database
func Inspect(ctx context.Context, path string) (*model.TableCounts, error) {
	logger := ctxlog.From(ctx)

	f, err := os.Open(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open extract", goerr.V("path", path))
	}
	defer f.Close()

	scanner := osmpbf.New(ctx, f, runtime.GOMAXPROCS(0))
	defer scanner.Close()

	start := time.Now()
	counts := &model.TableCounts{}
	for scanner.Scan() {
		var rec tagfilter.Record
		switch obj := scanner.Object().(type) {
		case *osm.Node:
			counts.Nodes++
			rec = tagfilter.RouteNode(obj)
		case *osm.Way:
			counts.Ways++
			rec = tagfilter.RouteWay(obj)
		case *osm.Relation:
			counts.Relations++
			// relations are not routed by the style
			continue
		default:
			continue
		}

		if len(rec.Tags) == 0 {
			counts.Dropped++
		}
		switch rec.Table {
		case tagfilter.TableBuildings:
			counts.Buildings++
		case tagfilter.TableRoads:
			counts.Roads++
		case tagfilter.TablePOIs:
			counts.POIs++
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, goerr.Wrap(err, "failed to scan extract", goerr.V("path", path))
	}

	logger.Info("Inspected extract", "path", path, "duration", time.Since(start))
	return counts, nil
}
