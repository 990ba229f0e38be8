package config

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/domain/types"
	"github.com/m-mizutani/osmload/pkg/infra/geofabrik"
	"github.com/urfave/cli/v3"
)

// Extract holds which extract to download and where to put it
type Extract struct {
	Region      string
	Country     string
	BaseURL     string
	ForcePBF    bool
	Overwrite   string
	WorkDir     string
	MaxAttempts int
}

// Flags returns CLI flags for extract configuration
func (c *Extract) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "region",
			Usage:       "Geofabrik region, e.g. europe",
			Destination: &c.Region,
			Sources:     cli.EnvVars("OSMLOAD_REGION"),
		},
		&cli.StringFlag{
			Name:        "country",
			Usage:       "Geofabrik country, e.g. monaco",
			Destination: &c.Country,
			Sources:     cli.EnvVars("OSMLOAD_COUNTRY"),
		},
		&cli.StringFlag{
			Name:        "base-url",
			Usage:       "Download server",
			Value:       geofabrik.DefaultBaseURL,
			Destination: &c.BaseURL,
			Sources:     cli.EnvVars("OSMLOAD_BASE_URL"),
		},
		&cli.BoolFlag{
			Name:        "force-pbf",
			Usage:       "Skip the shapefile archive and download the .osm.pbf extract",
			Destination: &c.ForcePBF,
			Sources:     cli.EnvVars("OSMLOAD_FORCE_PBF"),
		},
		&cli.StringFlag{
			Name:        "overwrite",
			Usage:       "What to do when the extract already exists locally (ask, yes, no)",
			Value:       "ask",
			Destination: &c.Overwrite,
			Sources:     cli.EnvVars("OSMLOAD_OVERWRITE"),
		},
		&cli.StringFlag{
			Name:        "work-dir",
			Usage:       "Directory for downloaded and expanded files",
			Value:       ".",
			Destination: &c.WorkDir,
			Sources:     cli.EnvVars("OSMLOAD_WORK_DIR"),
		},
		&cli.IntFlag{
			Name:        "max-attempts",
			Usage:       "Probes and prompts allowed while resolving the extract (at most 5)",
			Value:       types.MaxResolveAttempts,
			Destination: &c.MaxAttempts,
			Sources:     cli.EnvVars("OSMLOAD_MAX_ATTEMPTS"),
		},
	}
}

// Validate checks the extract configuration
func (c *Extract) Validate() error {
	if c.Country == "" {
		return goerr.New("country is required")
	}
	switch c.Overwrite {
	case "ask", "yes", "no":
	default:
		return goerr.New("invalid overwrite mode", goerr.V("overwrite", c.Overwrite))
	}
	if c.MaxAttempts < 1 || c.MaxAttempts > types.MaxResolveAttempts {
		return goerr.New("max attempts out of range",
			goerr.V("max_attempts", c.MaxAttempts),
			goerr.V("limit", types.MaxResolveAttempts))
	}
	return nil
}

// Request builds the download request. The region becomes a path segment of
// the base URL, {base}/{region}/{country}-latest{suffix}.
func (c *Extract) Request() *model.DownloadRequest {
	base := strings.TrimRight(c.BaseURL, "/") + "/"
	if region := strings.Trim(c.Region, "/"); region != "" {
		base += region + "/"
	}

	return &model.DownloadRequest{
		BaseURL:  base,
		Country:  c.Country,
		Suffixes: types.DefaultSuffixes,
		ForcePBF: c.ForcePBF,
		WorkDir:  c.WorkDir,
	}
}

// FixedAnswer returns the answer to the overwrite question when it is not
// asked interactively, or "" for ask.
func (c *Extract) FixedAnswer() string {
	switch c.Overwrite {
	case "yes":
		return "y"
	case "no":
		return "n"
	}
	return ""
}
