package config

import (
	"github.com/urfave/cli/v3"
)

// Tools holds paths of the external programs
type Tools struct {
	PSQL      string
	OGR2OGR   string
	OSM2PGSQL string
}

// Flags returns CLI flags for external tool configuration
func (c *Tools) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "psql",
			Usage:       "psql binary",
			Value:       "psql",
			Destination: &c.PSQL,
			Sources:     cli.EnvVars("OSMLOAD_PSQL"),
		},
		&cli.StringFlag{
			Name:        "ogr2ogr",
			Usage:       "ogr2ogr binary, used for shapefile archives",
			Value:       "ogr2ogr",
			Destination: &c.OGR2OGR,
			Sources:     cli.EnvVars("OSMLOAD_OGR2OGR"),
		},
		&cli.StringFlag{
			Name:        "osm2pgsql",
			Usage:       "osm2pgsql binary, used for .osm.pbf extracts",
			Value:       "osm2pgsql",
			Destination: &c.OSM2PGSQL,
			Sources:     cli.EnvVars("OSMLOAD_OSM2PGSQL"),
		},
	}
}

// Required lists the binaries an import needs before anything destructive
// happens. The loader is not known until the download resolves, so both
// loaders are required unless forcePBF rules out the archive.
func (c *Tools) Required(forcePBF bool, withPSQL bool) []string {
	var bins []string
	if withPSQL {
		bins = append(bins, c.PSQL)
	}
	if !forcePBF {
		bins = append(bins, c.OGR2OGR)
	}
	return append(bins, c.OSM2PGSQL)
}
