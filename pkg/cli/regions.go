package cli

import (
	"context"
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/m-mizutani/osmload/pkg/domain/model"
	"github.com/m-mizutani/osmload/pkg/infra/geofabrik"
	"github.com/urfave/cli/v3"
)

func cmdRegions() *cli.Command {
	var (
		baseURL string
		parent  string
	)

	return &cli.Command{
		Name:  "regions",
		Usage: "List regions available on the download server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "base-url",
				Usage:       "Download server",
				Value:       geofabrik.DefaultBaseURL,
				Destination: &baseURL,
				Sources:     cli.EnvVars("OSMLOAD_BASE_URL"),
			},
			&cli.StringFlag{
				Name:        "parent",
				Usage:       "Only list regions below this parent, e.g. europe",
				Destination: &parent,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			regions, err := geofabrik.NewClient(geofabrik.WithBaseURL(baseURL)).Regions(ctx)
			if err != nil {
				return err
			}
			printRegions(c, filterRegions(regions, parent))
			return nil
		},
	}
}

func filterRegions(regions []*model.Region, parent string) []*model.Region {
	var out []*model.Region
	for _, r := range regions {
		if parent == "" || r.Parent == parent {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func printRegions(c *cli.Command, regions []*model.Region) {
	tw := tabwriter.NewWriter(c.Root().Writer, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tPARENT\tNAME\tSHAPEFILE")
	for _, r := range regions {
		shp := "no"
		if r.HasShapefile() {
			shp = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", r.ID, r.Parent, r.Name, shp)
	}
	tw.Flush()
}
